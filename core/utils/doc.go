// Package utils provides small filesystem helpers shared by the server and the content tooling.
//
// ModuleDir reports the directory of the running executable, resolved once per process.
// Within checks that a path stays inside a root directory after cleaning.
package utils
