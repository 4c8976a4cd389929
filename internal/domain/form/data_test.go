package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestCloneDataDoesNotAlias(t *testing.T) {
	src := datatypes.JSONMap{
		"color": "blue",
		"rooms": map[string]interface{}{"kitchen": "white"},
		"extras": []interface{}{
			map[string]interface{}{"name": "trim"},
		},
	}

	snap := CloneData(src)

	src["color"] = "navy"
	src["rooms"].(map[string]interface{})["kitchen"] = "black"
	src["extras"].([]interface{})[0].(map[string]interface{})["name"] = "moulding"

	assert.Equal(t, "blue", snap["color"])
	assert.Equal(t, "white", snap["rooms"].(map[string]interface{})["kitchen"])
	assert.Equal(t, "trim", snap["extras"].([]interface{})[0].(map[string]interface{})["name"])
}

func TestCloneDataNil(t *testing.T) {
	snap := CloneData(nil)
	assert.NotNil(t, snap)
	assert.Empty(t, snap)
}
