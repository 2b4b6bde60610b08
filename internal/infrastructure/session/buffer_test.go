package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_ReadReplacesInvalidUTF8AndPollDoesNotConsume(t *testing.T) {
	s := &Session{}
	s.out.append([]byte("ok\xff\xfeend\xe2\x82"))

	assert.True(t, s.HasPendingOutput())
	assert.True(t, s.HasPendingOutput(), "polling must not drain the buffer")
	assert.Equal(t, "ok\uFFFDend\uFFFD", s.Read())
	assert.False(t, s.HasPendingOutput())
	assert.Equal(t, "", s.Read())
}
