package solana

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybbus/jsonrpc"
)

func decodeJSON(t *testing.T, s string) interface{} {
	d := json.NewDecoder(bytes.NewBufferString(s))
	var raw interface{}
	require.NoError(t, d.Decode(&raw))
	return raw
}

func TestParse(t *testing.T) {
	e, err := ParseTransactionError(decodeJSON(t, `{"InstructionError":[2,{"Custom":3}]}`))
	require.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	require.NotNil(t, e.InstructionError())
	assert.Equal(t, 2, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorCustom, e.InstructionError().ErrorKey())
	require.NotNil(t, e.InstructionError().CustomError())
	assert.Equal(t, CustomError(3), *e.InstructionError().CustomError())

	e, err = ParseTransactionError(decodeJSON(t, `{"InstructionError":[0,"InvalidArgument"]}`))
	require.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	require.NotNil(t, e.InstructionError())
	assert.Equal(t, 0, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorInvalidArgument, e.InstructionError().ErrorKey())

	e, err = ParseTransactionError(decodeJSON(t, `"DuplicateSignature"`))
	require.NoError(t, err)

	assert.Equal(t, TransactionErrorDuplicateSignature, e.ErrorKey())
	assert.Nil(t, e.InstructionError())

	// Keys that aren't enumerated still come through.
	e, err = ParseTransactionError(decodeJSON(t, `{"InsufficientFundsForRent":{"account_index":1}}`))
	require.NoError(t, err)
	assert.Equal(t, TransactionErrorInsufficientFundsForRent, e.ErrorKey())

	e, err = ParseTransactionError(nil)
	assert.NoError(t, err)
	assert.Nil(t, e)
}

func TestParse_Invalid(t *testing.T) {
	_, err := ParseTransactionError(decodeJSON(t, `{"a":1,"b":2}`))
	assert.Error(t, err)

	_, err = ParseTransactionError(decodeJSON(t, `{"InstructionError":[1]}`))
	assert.Error(t, err)

	_, err = ParseTransactionError(decodeJSON(t, `{"InstructionError":"nope"}`))
	assert.Error(t, err)

	_, err = ParseTransactionError(decodeJSON(t, `12`))
	assert.Error(t, err)
}

func TestParseRPCError(t *testing.T) {
	e, err := ParseRPCError(&jsonrpc.RPCError{
		Code:    -32002,
		Message: "Transaction simulation failed",
		Data:    decodeJSON(t, `{"err":{"InstructionError":[0,{"Custom":1}]},"logs":[]}`),
	})
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	assert.True(t, e.IsInsufficientFunds())

	e, err = ParseRPCError(&jsonrpc.RPCError{Data: decodeJSON(t, `{"err":null}`)})
	assert.NoError(t, err)
	assert.Nil(t, e)

	_, err = ParseRPCError(&jsonrpc.RPCError{Data: "text"})
	assert.Error(t, err)

	e, err = ParseRPCError(nil)
	assert.NoError(t, err)
	assert.Nil(t, e)
}

func TestIsInsufficientFunds(t *testing.T) {
	for _, tc := range []struct {
		raw      string
		expected bool
	}{
		{`"InsufficientFundsForFee"`, true},
		{`{"InsufficientFundsForRent":{"account_index":0}}`, true},
		{`{"InstructionError":[0,{"Custom":1}]}`, true},
		{`{"InstructionError":[0,"InsufficientFunds"]}`, true},
		{`{"InstructionError":[0,{"Custom":2}]}`, false},
		{`{"InstructionError":[0,"InvalidArgument"]}`, false},
		{`"BlockhashNotFound"`, false},
	} {
		e, err := ParseTransactionError(decodeJSON(t, tc.raw))
		require.NoError(t, err)
		assert.Equal(t, tc.expected, e.IsInsufficientFunds(), tc.raw)
	}
}

func TestNew(t *testing.T) {
	expected := decodeJSON(t, `"DuplicateSignature"`)
	e := NewTransactionError(TransactionErrorDuplicateSignature)
	assert.Equal(t, expected, e.raw)

	expected = decodeJSON(t, `{"InstructionError":[0,"InvalidArgument"]}`)
	e, err := TransactionErrorFromInstructionError(&InstructionError{
		Index: 0,
		Err:   errors.New(string(InstructionErrorInvalidArgument)),
	})
	require.NoError(t, err)
	assert.Equal(t, expected, e.raw)

	expected = decodeJSON(t, `{"InstructionError":[2,{"Custom":3}]}`)
	e, err = TransactionErrorFromInstructionError(&InstructionError{
		Index: 2,
		Err:   CustomError(3),
	})
	require.NoError(t, err)
	assert.Equal(t, expected, e.raw)

	js, err := e.JSONString()
	require.NoError(t, err)
	assert.JSONEq(t, `{"InstructionError":[2,{"Custom":3}]}`, js)
	assert.Equal(t, "Error processing Instruction 2: custom program error: 3", e.Error())
}

func TestParseJSONNumber(t *testing.T) {
	tc := []interface{}{
		"1",
		1.0,
		json.Number("1"),
	}
	for i, c := range tc {
		v, err := parseJSONNumber(c)
		assert.NoError(t, err)
		assert.Equal(t, 1, v, i)
	}

	_, err := parseJSONNumber(true)
	assert.Error(t, err)
	_, err = parseJSONNumber("one")
	assert.Error(t, err)
}
