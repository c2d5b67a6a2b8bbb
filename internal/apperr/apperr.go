// Package apperr holds the error taxonomy shared by services and handlers.
// Messages are user facing and written in Vietnamese, like the rest of the
// response bodies.
package apperr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindDuplicate
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

const (
	MsgInternal        = "Đã xảy ra lỗi hệ thống. Vui lòng thử lại sau."
	MsgRequiredFields  = "Vui lòng điền đầy đủ thông tin bắt buộc"
	MsgInvalidEmail    = "Email không hợp lệ"
	MsgInvalidBody     = "Dữ liệu gửi lên không hợp lệ"
	MsgInvalidPaging   = "Tham số phân trang không hợp lệ"
	MsgRateLimited     = "Bạn đã gửi quá nhiều yêu cầu. Vui lòng thử lại sau."
	MsgDuplicateCode   = "Không thể tạo mã hồ sơ, vui lòng thử lại"
	MsgRouteNotFound   = "Không tìm thấy trang hoặc API"
	MsgServiceNotFound = "Không tìm thấy dịch vụ"
)

// Error is a classified, user-presentable failure.
type Error struct {
	Kind    Kind
	Message string
	// Fields lists the offending input fields of a validation failure.
	Fields []string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s [%s]", e.Kind, e.Message, strings.Join(e.Fields, ","))
}

func Validation(msg string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg}
}

func RateLimited() *Error {
	return &Error{Kind: KindRateLimited, Message: MsgRateLimited}
}

// ErrDuplicateCode is returned by registries when a code is already taken.
var ErrDuplicateCode = Duplicate(MsgDuplicateCode)

// KindOf classifies err. Anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the message safe to show to the user.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return MsgInternal
}

// FieldsOf returns validation fields, if any.
func FieldsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
