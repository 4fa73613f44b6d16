package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jumpei00/gostockanalysis/utils"
)

func TestCompressedStringRoundTrip(t *testing.T) {
	assert := assert.New(t)

	payload := []byte("time,open,high,low,close,volume\n1609718400000,9.5,11,9,10,1000")

	compressed := utils.ToCompressedString(payload)
	assert.NotEmpty(compressed)

	raw, err := utils.FromCompressedString(compressed)
	assert.Nil(err)
	assert.Equal(payload, raw)

	_, err = utils.FromCompressedString("not base64!!")
	assert.NotNil(err)

	_, err = utils.FromCompressedString("bm90IGd6aXA=")
	assert.NotNil(err)
}
