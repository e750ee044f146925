package sitemark

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL           = "internal"
	EINVALID            = "invalid"
	ENOTFOUND           = "not_found"
	EINVALIDTOCITEM     = "invalid_toc_item"
	EINVALIDUSERGROUP   = "invalid_user_group"
	EINVALIDID          = "invalid_id"
	EINVALIDSITEMAP     = "invalid_sitemap"
	EINVALIDDYNAMICURLS = "invalid_dynamic_urls"
	EUSAGE              = "usage"
)

// Error represents an application-specific error.
//
// DocID and Row are set for errors raised while parsing a document; Row is
// the offending source line, kept verbatim so authors can find it.
type Error struct {
	Code    string
	Message string
	DocID   string
	Row     string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Code + ": " + e.Message
	if e.DocID != "" {
		msg += " (doc: " + e.DocID
		if e.Row != "" {
			msg += fmt.Sprintf(", row: %q", e.Row)
		}
		msg += ")"
	} else if e.Row != "" {
		msg += fmt.Sprintf(" (row: %q)", e.Row)
	}
	return msg
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// ErrorRow returns the source row attached to an application error, if any.
func ErrorRow(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Row
	}
	return ""
}

// TOCItemError reports a malformed sitemap line.
func TOCItemError(docID, message, row string) *Error {
	return &Error{Code: EINVALIDTOCITEM, Message: message, DocID: docID, Row: row}
}

// UserGroupError reports a rejected user-group declaration.
func UserGroupError(docID, message, row string) *Error {
	return &Error{Code: EINVALIDUSERGROUP, Message: message, DocID: docID, Row: row}
}

// IDError reports an id cross-reference missing from the global id map.
func IDError(docID, id string) *Error {
	return &Error{Code: EINVALIDID, Message: fmt.Sprintf("id %q not found", id), DocID: docID}
}

// SitemapError reports a violated sitemap-level rule.
func SitemapError(message string) *Error {
	return &Error{Code: EINVALIDSITEMAP, Message: message}
}

// DynamicURLsError reports a violated dynamic-url rule.
func DynamicURLsError(message string) *Error {
	return &Error{Code: EINVALIDDYNAMICURLS, Message: message}
}

// UsageError reports a sitemap entry that could not be located on disk.
func UsageError(format string, args ...any) *Error {
	return Errorf(EUSAGE, format, args...)
}
