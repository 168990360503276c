// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the input of the Endpoint before it reaches the
// item bucket: batches of actions, book names and data URLs.
package validators

import "context"

// Validator checks v. fields narrows the check to the named parts of v;
// without fields everything is checked.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
