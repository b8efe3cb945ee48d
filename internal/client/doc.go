// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the auth API.
//
// Each subcommand (signup, login, profile, logout, version) maps to one call
// of [adapter.AuthAdapter]. The last issued token is kept in a file between
// runs so that profile and logout work without logging in again.
package client
