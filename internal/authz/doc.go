// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package authz decides which requests reach the JSON API, using a Casbin
// RBAC model with keyMatch2 path patterns.
//
// Requests carrying a valid session act as RolePlayer; everyone else is
// RoleAnonymous, which the embedded policy grants nothing. The policy can be
// replaced with a file for deployments that need more roles.
package authz
