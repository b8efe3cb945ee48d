package handler

import "errors"

// errNoHandlersAreCreated means neither an HTTP nor a gRPC address is set.
var errNoHandlersAreCreated = errors.New("no handlers are created")
