package rtr_test

import (
	"testing"

	"github.com/rohanthewiz/assert"

	"github.com/swervehttp/swerve/core/rtr"
)

func TestStatic(t *testing.T) {
	r := rtr.New[string]()
	r.Add("GET", "/blog", "Blog")
	r.Add("GET", "/blog/post", "Blog post")

	data, store, found := r.Lookup("GET", "/blog")
	assert.True(t, found)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, "Blog", data)

	data, _, found = r.Lookup("GET", "/blog/post")
	assert.True(t, found)
	assert.Equal(t, "Blog post", data)

	for _, notFound := range []string{"/", "/blo", "/blog/posts", "/blog/post/x"} {
		_, _, found = r.Lookup("GET", notFound)
		assert.False(t, found)
	}

	_, _, found = r.Lookup("POST", "/blog")
	assert.False(t, found)
}

func TestParameters(t *testing.T) {
	r := rtr.New[string]()
	r.Add("GET", "/users/:user_id/teams/:team_id", "User team")

	data, store, found := r.Lookup("GET", "/users/7/teams/9")
	assert.True(t, found)
	assert.Equal(t, "User team", data)

	caps := store.Captures()
	assert.Equal(t, 2, len(caps))
	// Captures arrive in route order.
	assert.Equal(t, "user_id", caps[0].Key)
	assert.Equal(t, "7", caps[0].Value)
	assert.Equal(t, "team_id", caps[1].Key)
	assert.Equal(t, "9", caps[1].Value)

	_, _, found = r.Lookup("GET", "/users/7")
	assert.False(t, found)
	_, _, found = r.Lookup("GET", "/users/7/teams")
	assert.False(t, found)
}

func TestRestParameter(t *testing.T) {
	r := rtr.New[string]()
	r.Add("GET", "/files/*filepath", "Files")

	data, store, found := r.Lookup("GET", "/files/css/site.css")
	assert.True(t, found)
	assert.Equal(t, "Files", data)

	v, ok := store.Get("filepath")
	assert.True(t, ok)
	assert.Equal(t, "css/site.css", v)
}

func TestMountMergesCaptures(t *testing.T) {
	child := rtr.New[string]()
	child.Add("GET", "/teams/:team_id", "Team")

	r := rtr.New[string]()
	r.Mount("/users/:user_id", child)

	data, store, found := r.Lookup("GET", "/users/7/teams/9")
	assert.True(t, found)
	assert.Equal(t, "Team", data)

	caps := store.Captures()
	assert.Equal(t, 2, len(caps))
	assert.Equal(t, "user_id", caps[0].Key)
	assert.Equal(t, "7", caps[0].Value)
	assert.Equal(t, "team_id", caps[1].Key)
	assert.Equal(t, "9", caps[1].Value)
}

func TestMountInnermostWins(t *testing.T) {
	child := rtr.New[string]()
	child.Add("GET", "/sub/:id", "Sub")

	r := rtr.New[string]()
	r.Mount("/outer/:id", child)

	_, store, found := r.Lookup("GET", "/outer/1/sub/2")
	assert.True(t, found)

	v, _ := store.Get("id")
	assert.Equal(t, "2", v)
	assert.Equal(t, 1, store.Len())
}

func TestTrailingSlashNormalization(t *testing.T) {
	r := rtr.New[string]()
	r.Add("GET", "/blog/", "Blog")

	_, _, found := r.Lookup("GET", "/blog")
	assert.True(t, found)
}
