package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	var testCases = []struct {
		description string
		base        string
		expect      string
	}{
		{description: "no base", base: "", expect: "/auth/create-new-password/"},
		{description: "host", base: "https://sale.example.com", expect: "https://sale.example.com/auth/create-new-password/"},
		{description: "trailing slash", base: "https://sale.example.com/", expect: "https://sale.example.com/auth/create-new-password/"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Join(testCase.base, NewPasswordCreationPagePathForBackend()), testCase.description)
	}
}
