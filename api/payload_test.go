package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_Unmarshal(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      func(t *testing.T, p *Payload)
	}{
		{
			description: "success with numeric id",
			input:       `{"token":"abc","id":42}`,
			expect: func(t *testing.T, p *Payload) {
				assert.Equal(t, "abc", p.Token)
				assert.Equal(t, ID("42"), p.ID)
				assert.False(t, p.HasFieldErrors())
				assert.False(t, p.HasGenericErrors())
			},
		},
		{
			description: "string id",
			input:       `{"id":"u-1"}`,
			expect: func(t *testing.T, p *Payload) {
				assert.Equal(t, "u-1", p.ID.String())
			},
		},
		{
			description: "field errors as string and list",
			input:       `{"fieldErrors":{"email":"taken","password":["short","weak"],"username":null}}`,
			expect: func(t *testing.T, p *Payload) {
				assert.Equal(t, Messages{"taken"}, p.Field("email"))
				assert.Equal(t, "weak", p.Field("password").Last())
				assert.Nil(t, p.Field("username"))
				assert.Equal(t, "", p.Field("missing").Last())
			},
		},
		{
			description: "empty generic errors are present",
			input:       `{"genericErrors":[],"fieldErrors":{}}`,
			expect: func(t *testing.T, p *Payload) {
				assert.True(t, p.HasGenericErrors())
				assert.True(t, p.HasFieldErrors())
				assert.Equal(t, "", p.LastGenericError())
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			p := &Payload{}
			require.NoError(t, json.Unmarshal([]byte(testCase.input), p), testCase.description)
			testCase.expect(t, p)
		})
	}
}

func TestMessages_Join(t *testing.T) {
	assert.Equal(t, "x; y", Messages{"x", "y"}.Join("; "))
	assert.Equal(t, "", Messages(nil).Join("; "))
	assert.Equal(t, "y", Messages{"x", "y"}.Last())
}

func TestID_UnmarshalInvalid(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestPayloadOf(t *testing.T) {
	withData := &Error{Status: 400, Data: &Payload{Reason: "locked"}}
	assert.Equal(t, "locked", PayloadOf(withData).Reason)
	assert.Equal(t, "locked", PayloadOf(fmt.Errorf("wrapped: %w", withData)).Reason)
	assert.Equal(t, &Payload{}, PayloadOf(&Error{Status: 502}))
	assert.Equal(t, &Payload{}, PayloadOf(errors.New("connection refused")))
	assert.Equal(t, &Payload{}, PayloadOf(nil))

	var nilPayload *Payload
	assert.Nil(t, nilPayload.Field("email"))
	assert.Equal(t, "", nilPayload.LastGenericError())
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "token sale api: status 400: locked", (&Error{Status: 400, Data: &Payload{Reason: "locked"}}).Error())
	assert.Equal(t, "token sale api: status 400: g2", (&Error{Status: 400, Data: &Payload{GenericErrors: []string{"g1", "g2"}}}).Error())
	assert.Equal(t, "token sale api: status 500", (&Error{Status: 500}).Error())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Credentials{Email: "a@b.com", Password: "secret"}.Validate())
	assert.Error(t, Credentials{Email: "not-an-email", Password: "secret"}.Validate())
	assert.Error(t, Credentials{Email: "a@b.com"}.Validate())
	assert.NoError(t, Registration{Email: "a@b.com"}.Validate())
	assert.Error(t, Registration{}.Validate())
	assert.NoError(t, PasswordReset{Email: "a@b.com"}.Validate())
	assert.NoError(t, NewPassword{Token: "t", Password: "p4ssword", ConfirmationPassword: "p4ssword"}.Validate())
	assert.Error(t, NewPassword{Token: "t", Password: "p4ssword", ConfirmationPassword: "other"}.Validate())
}
