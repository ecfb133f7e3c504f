package extract

import (
	"reflect"
	"testing"

	"github.com/rohanthewiz/assert"
)

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "user_id", snakeCase("UserID"))
	assert.Equal(t, "team_id", snakeCase("TeamID"))
	assert.Equal(t, "name", snakeCase("Name"))
	assert.Equal(t, "post_url", snakeCase("PostURL"))
	assert.Equal(t, "id", snakeCase("ID"))
}

func TestPercentDecode(t *testing.T) {
	assert.Equal(t, "hello world", percentDecode("hello%20world"))
	assert.Equal(t, "a/b", percentDecode("a%2Fb"))
	assert.Equal(t, "plain", percentDecode("plain"))
	// Malformed escapes stay put.
	assert.Equal(t, "50%zz", percentDecode("50%zz"))
	assert.Equal(t, "50%", percentDecode("50%"))
	assert.Equal(t, "50%2", percentDecode("50%2"))
	// '+' is not a space in a path.
	assert.Equal(t, "a+b", percentDecode("a+b"))
}

func TestParseLeafBounds(t *testing.T) {
	var small uint8
	err := parseLeaf("300", reflect.ValueOf(&small).Elem())
	assert.True(t, err != nil) // 300 overflows uint8

	err = parseLeaf("255", reflect.ValueOf(&small).Elem())
	assert.Nil(t, err)
	assert.Equal(t, uint8(255), small)

	var f float64
	err = parseLeaf("3.25", reflect.ValueOf(&f).Elem())
	assert.Nil(t, err)
	assert.Equal(t, 3.25, f)

	var b bool
	err = parseLeaf("true", reflect.ValueOf(&b).Elem())
	assert.Nil(t, err)
	assert.True(t, b)
}

func TestDeserializeUnsupportedTopLevel(t *testing.T) {
	var ch chan int
	kind := deserialize([]decodedCapture{{key: "a", value: "1"}}, reflect.ValueOf(&ch).Elem())
	assert.Equal[ErrorKind](t, UnsupportedType{Name: "chan int"}, kind)
}

func TestDeserializeMapNonStringKeys(t *testing.T) {
	var m map[int]string
	kind := deserialize([]decodedCapture{{key: "a", value: "1"}}, reflect.ValueOf(&m).Elem())
	assert.Equal[ErrorKind](t, UnsupportedType{Name: "map[int]string"}, kind)
}
