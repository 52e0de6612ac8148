// Package honeytoken binds the ERC-20 subset of the HONEY reward token the
// client needs: balances, supply, and the allowance/approve pair that gates
// every HONEY payment to the game contract.
package honeytoken

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ContractABI is the JSON ABI of the ERC-20 functions used by the client.
const ContractABI = "[{\"inputs\":[{\"internalType\":\"address\",\"name\":\"account\",\"type\":\"address\"}],\"name\":\"balanceOf\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[],\"name\":\"totalSupply\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"address\",\"name\":\"owner\",\"type\":\"address\"},{\"internalType\":\"address\",\"name\":\"spender\",\"type\":\"address\"}],\"name\":\"allowance\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"address\",\"name\":\"spender\",\"type\":\"address\"},{\"internalType\":\"uint256\",\"name\":\"amount\",\"type\":\"uint256\"}],\"name\":\"approve\",\"outputs\":[{\"internalType\":\"bool\",\"name\":\"\",\"type\":\"bool\"}],\"stateMutability\":\"nonpayable\",\"type\":\"function\"}]"

var parsedABI abi.ABI

func init() {
	var err error
	parsedABI, err = abi.JSON(strings.NewReader(ContractABI))
	if err != nil {
		panic(err)
	}
}

// ABI returns the parsed token ABI.
func ABI() abi.ABI {
	return parsedABI
}

// HoneyToken is a typed binding to the HONEY token.
type HoneyToken struct {
	address  common.Address
	contract *bind.BoundContract
}

// New binds the token at address through backend.
func New(address common.Address, backend bind.ContractBackend) *HoneyToken {
	return &HoneyToken{
		address:  address,
		contract: bind.NewBoundContract(address, parsedABI, backend, backend, backend),
	}
}

// Address returns the bound token address.
func (h *HoneyToken) Address() common.Address {
	return h.address
}

func (h *HoneyToken) callBig(opts *bind.CallOpts, method string, params ...interface{}) (*big.Int, error) {
	var out []interface{}
	if err := h.contract.Call(opts, &out, method, params...); err != nil {
		return nil, fmt.Errorf("honeytoken.%s: %w", method, err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// BalanceOf reads the token balance of account in wei.
func (h *HoneyToken) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	return h.callBig(opts, "balanceOf", account)
}

// TotalSupply reads the total HONEY ever minted and not burned.
func (h *HoneyToken) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	return h.callBig(opts, "totalSupply")
}

// Allowance reads how much spender may still pull from owner.
func (h *HoneyToken) Allowance(opts *bind.CallOpts, owner, spender common.Address) (*big.Int, error) {
	return h.callBig(opts, "allowance", owner, spender)
}

// Approve lets spender pull up to amount from the caller.
func (h *HoneyToken) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return h.contract.Transact(opts, "approve", spender, amount)
}
