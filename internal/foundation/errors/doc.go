// Package errors provides the classified error primitives used across postserve.
//
// Every failure the content pipeline can produce carries a category that tells
// callers what went wrong without string matching:
//   - CategoryFormat: a manifest payload that is not the expected list shape
//   - CategoryFileSystem: a local manifest or post body that cannot be read
//   - CategoryNetwork: a remote source that is unreachable or answers non-2xx
//   - CategoryDecode: a remote payload that does not conform
//   - CategoryPrecondition: a post collection with nothing to serve
//
// Errors are created through the fluent ErrorBuilder:
//
//	err := errors.NetworkError("fetch manifest").
//		WithContext("url", manifestURL).
//		WithCause(cause).
//		Build()
//
// HTTP and CLI adapters translate classified errors into status codes and
// exit codes.
package errors
