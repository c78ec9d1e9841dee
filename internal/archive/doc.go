// Package archive abstracts "a container of named byte entries" so the
// loader does not care whether benchmark files sit in a zip archive, an
// extracted directory tree, or an S3/minio bucket. Sources are scoped
// resources: open, iterate, read, close.
package archive
