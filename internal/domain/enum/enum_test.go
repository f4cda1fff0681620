package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodUnmarshalNormalizes(t *testing.T) {
	var m PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`" Card "`), &m))
	assert.Equal(t, PaymentMethodCard, m)
	assert.True(t, m.IsValid())
	assert.False(t, PaymentMethod("cheque").IsValid())
}

func TestAdjustmentTypeJSON(t *testing.T) {
	var a AdjustmentType
	require.NoError(t, json.Unmarshal([]byte(`"subtract"`), &a))
	assert.Equal(t, AdjustmentSubtraction, a)
	assert.Equal(t, -1, a.Sign())

	require.NoError(t, json.Unmarshal([]byte(`0`), &a))
	assert.Equal(t, AdjustmentAddition, a)

	out, err := json.Marshal(AdjustmentSubtraction)
	require.NoError(t, err)
	assert.Equal(t, `"Subtraction"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"sideways"`), &a))
}
