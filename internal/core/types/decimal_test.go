package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{12, "12.00"},
		{17.2, "17.20"},
		{22.714, "22.71"},
		{25.775, "25.78"},
		{-1.5, "-1.50"},
		// rounding uses the shortest decimal form, not the binary expansion
		{2.675, "2.68"},
		{1.005, "1.01"},
		{-0.004, "0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in), "FormatValue(%v)", tt.in)
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var got struct {
		Number Amount `json:"number"`
		Quoted Amount `json:"quoted"`
		Empty  Amount `json:"empty"`
		Null   Amount `json:"null"`
	}

	err := json.Unmarshal([]byte(`{"number": 6.1, "quoted": "50", "empty": "", "null": null}`), &got)
	require.NoError(t, err)

	assert.Equal(t, Amount(6.1), got.Number)
	assert.Equal(t, Amount(50), got.Quoted)
	assert.Equal(t, Amount(0), got.Empty)
	assert.Equal(t, Amount(0), got.Null)
}

func TestAmount_UnmarshalJSON_Invalid(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &a))
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount(" 0.5 ")
	require.NoError(t, err)
	assert.Equal(t, Amount(0.5), a)

	_, err = ParseAmount("")
	assert.Error(t, err)
}

func TestAmount_MarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(struct {
		V Amount `json:"v"`
	}{V: 2.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v": 2.5}`, string(data))
}
