// Package timezone keeps every timestamp the studio shows (notification times,
// render times) in one configured location.
//
//	now := timezone.Now()
//	label := timezone.Format(notice.CreatedAt, "15:04:05")
//
// The location comes from the APP_TIMEZONE environment variable and is resolved
// when the package is imported. Unknown names fall back to UTC.
package timezone
