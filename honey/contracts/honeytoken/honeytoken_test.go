package honeytoken

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestApprovePacking(t *testing.T) {
	spender := common.HexToAddress("0x4a3F1Fe025f35ECE803A341A47Db5627Cb2f2501")
	data, err := ABI().Pack("approve", spender, big.NewInt(12))
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256([]byte("approve(address,uint256)"))[:4], data[:4])
	require.Equal(t, spender.Bytes(), data[4+12:4+32])
}

func TestABIMethods(t *testing.T) {
	for _, name := range []string{"balanceOf", "totalSupply", "allowance", "approve"} {
		_, ok := ABI().Methods[name]
		require.True(t, ok, name)
	}
}
