// Package token issues and verifies the stateless session token pair.
//
// Access tokens are short-lived and embed a public user snapshot so that
// request authentication needs no store lookup. Refresh tokens are
// long-lived and carry only the subject id. The two are signed with
// independent secrets and neither is ever persisted server-side; expiry and
// signature are the entire revocation mechanism.
package token
