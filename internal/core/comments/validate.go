package comments

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateCommentRequest carries the caller-supplied fields for a new comment.
// comment_id, approved and published_at are always assigned server-side;
// any caller values for them are ignored.
type CreateCommentRequest struct {
	PostID          string `json:"post_id" validate:"required"`
	Author          Author `json:"author"`
	Content         string `json:"content" validate:"required"`
	UserHostAddress string `json:"user_host_address" validate:"required"`
	UserAgent       string `json:"user_agent" validate:"required"`

	// Spam is supplied by the external spam-detection collaborator. It is a
	// pointer so an explicit false passes validation while a missing field
	// does not.
	Spam *bool `json:"spam" validate:"required"`

	// ReplyPath addresses the comment being replied to. Nil means this
	// comment starts a brand-new thread.
	ReplyPath *ReplyPath `json:"recipient_path,omitempty"`
}

// CreateCommentResponse returns the stored node and, for replies, a snapshot
// of the target taken before the new node was attached (including the
// target's pre-existing replies).
type CreateCommentResponse struct {
	NewComment *Comment `json:"new_comment"`
	RepliedTo  *Comment `json:"replied_to_comment,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under json field names so API clients can match
	// them against what they sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateCreateRequest checks every field and reports all violations at
// once as a single ValidationError.
func validateCreateRequest(req CreateCommentRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate comment: %w", err)
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:  fieldPath(fe),
			Reason: reasonForTag(fe),
		})
	}
	return &ValidationError{Fields: fields}
}

// fieldPath strips the request type prefix from the validator namespace,
// leaving e.g. "author.email"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reasonForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
