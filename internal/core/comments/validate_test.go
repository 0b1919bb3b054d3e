package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func validCreateRequest() CreateCommentRequest {
	return CreateCommentRequest{
		PostID: "p1",
		Author: Author{
			Name:  "Ada",
			Email: "ada@example.com",
		},
		Content:         "hello",
		UserHostAddress: "203.0.113.7",
		UserAgent:       "test-agent/1.0",
		Spam:            boolPtr(false),
	}
}

func TestValidateCreateRequest_Valid(t *testing.T) {
	assert.NoError(t, validateCreateRequest(validCreateRequest()))
}

func TestValidateCreateRequest_ExplicitSpamFalsePasses(t *testing.T) {
	req := validCreateRequest()
	req.Spam = boolPtr(false)

	assert.NoError(t, validateCreateRequest(req))
}

func TestValidateCreateRequest_ReportsAllViolationsAtOnce(t *testing.T) {
	err := validateCreateRequest(CreateCommentRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		fields[f.Field] = f.Reason
	}

	for _, want := range []string{
		"post_id", "author.name", "author.email", "content",
		"user_host_address", "user_agent", "spam",
	} {
		assert.Contains(t, fields, want)
	}
}

func TestValidateCreateRequest_BadEmail(t *testing.T) {
	req := validCreateRequest()
	req.Author.Email = "not-an-email"

	err := validateCreateRequest(req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "author.email", verr.Fields[0].Field)
	assert.Equal(t, "must be a valid email address", verr.Fields[0].Reason)
}

func TestValidateCreateRequest_WebsiteOptionalButMustBeURL(t *testing.T) {
	req := validCreateRequest()
	req.Author.Website = ""
	assert.NoError(t, validateCreateRequest(req))

	req.Author.Website = "https://example.com"
	assert.NoError(t, validateCreateRequest(req))

	req.Author.Website = "not a url"
	err := validateCreateRequest(req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "author.website", verr.Fields[0].Field)
}

func TestValidationError_IsValidationError(t *testing.T) {
	err := validateCreateRequest(CreateCommentRequest{})

	assert.True(t, IsValidationError(err))
	assert.False(t, IsNotFound(err))
}
