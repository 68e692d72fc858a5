package rental

import "errors"

// ErrCode classifies rental failures for the HTTP layer.
type ErrCode string

const (
	ErrCodeBookUnavailable  ErrCode = "BOOK_UNAVAILABLE"
	ErrCodeBadDuration      ErrCode = "BAD_DURATION"
	ErrCodeOwnBook          ErrCode = "OWN_BOOK"
	ErrCodeNotMember        ErrCode = "NOT_MEMBER"
	ErrCodeNotBorrower      ErrCode = "NOT_BORROWER"
	ErrCodeNotLender        ErrCode = "NOT_LENDER"
	ErrCodeNotOpen          ErrCode = "NOT_OPEN"
	ErrCodeNotOverdue       ErrCode = "NOT_OVERDUE"
	ErrCodePendingExtension ErrCode = "PENDING_EXTENSION"
	ErrCodeAlreadyDecided   ErrCode = "ALREADY_DECIDED"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts the error code, empty for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
