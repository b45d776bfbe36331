package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestString2ObjectID(t *testing.T) {
	valid := "64a000000000000000000001"
	assert.Equal(t, valid, String2ObjectID(valid).Hex())

	// Chuỗi sai định dạng trả về NilObjectID thay vì panic
	assert.Equal(t, primitive.NilObjectID, String2ObjectID("khong-phai-hex"))
}

func TestStringArray2ObjectIDArray(t *testing.T) {
	ids := []string{"64a000000000000000000001", "64a000000000000000000002"}
	objectIDs := StringArray2ObjectIDArray(ids)

	assert.Len(t, objectIDs, 2)
	assert.Equal(t, ids[0], objectIDs[0].Hex())
	assert.Equal(t, ids[1], objectIDs[1].Hex())
}
