// Package honeygame binds the HoneyGame contract: the on-chain game that
// tracks players, bees and hives and mints HONEY rewards.
//
// Overview:
//
//	The client never reimplements contract logic. It reads player and
//	global counters through the view functions below and submits the four
//	player actions as transactions. Everything is ABI-encoded through
//	go-ethereum's bind.BoundContract.
//
// Read functions:
//   - players(address): the player record
//   - beeBalances(address, uint256): bees of one type owned by a player
//   - rewardPerBlock(uint256): emission at a block, halvings applied
//   - totalHoneyPower(), pendingHoney(address), startBlock(), initEthFee()
//   - HONEY(): the reward token address
//   - beeTypes(uint256), hiveLevels(uint256): the on-chain catalog
//
// Write functions:
//   - initialize(address referrer, bool withFreeBee), payable
//   - buyBee(uint256 beeTypeId, uint32 qty)
//   - upgradeHive()
//   - claim()
package honeygame

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ContractABI is the JSON ABI of the HoneyGame functions the client uses.
const ContractABI = "[{\"inputs\":[],\"name\":\"HONEY\",\"outputs\":[{\"internalType\":\"contract IMintableBurnableERC20\",\"name\":\"\",\"type\":\"address\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[],\"name\":\"initEthFee\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"address\",\"name\":\"user\",\"type\":\"address\"}],\"name\":\"pendingHoney\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[],\"name\":\"totalHoneyPower\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"uint256\",\"name\":\"blockNumber\",\"type\":\"uint256\"}],\"name\":\"rewardPerBlock\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[],\"name\":\"startBlock\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"address\",\"name\":\"\",\"type\":\"address\"}],\"name\":\"players\",\"outputs\":[{\"internalType\":\"bool\",\"name\":\"initialized\",\"type\":\"bool\"},{\"internalType\":\"uint32\",\"name\":\"hiveLevel\",\"type\":\"uint32\"},{\"internalType\":\"uint32\",\"name\":\"beeCount\",\"type\":\"uint32\"},{\"internalType\":\"uint128\",\"name\":\"nectarUsed\",\"type\":\"uint128\"},{\"internalType\":\"uint256\",\"name\":\"honeyPower\",\"type\":\"uint256\"},{\"internalType\":\"uint256\",\"name\":\"rewardDebt\",\"type\":\"uint256\"},{\"internalType\":\"uint256\",\"name\":\"pendingCarry\",\"type\":\"uint256\"},{\"internalType\":\"uint256\",\"name\":\"nextUpgradeTime\",\"type\":\"uint256\"},{\"internalType\":\"address\",\"name\":\"referrer\",\"type\":\"address\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"name\":\"beeTypes\",\"outputs\":[{\"internalType\":\"uint128\",\"name\":\"honeyRate\",\"type\":\"uint128\"},{\"internalType\":\"uint128\",\"name\":\"nectarConsumption\",\"type\":\"uint128\"},{\"internalType\":\"uint256\",\"name\":\"costHoney\",\"type\":\"uint256\"},{\"internalType\":\"bool\",\"name\":\"exists\",\"type\":\"bool\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"name\":\"hiveLevels\",\"outputs\":[{\"internalType\":\"uint32\",\"name\":\"totalBees\",\"type\":\"uint32\"},{\"internalType\":\"uint128\",\"name\":\"nectarOutput\",\"type\":\"uint128\"},{\"internalType\":\"uint256\",\"name\":\"costHoney\",\"type\":\"uint256\"},{\"internalType\":\"bool\",\"name\":\"exists\",\"type\":\"bool\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"address\",\"name\":\"\",\"type\":\"address\"},{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"name\":\"beeBalances\",\"outputs\":[{\"internalType\":\"uint32\",\"name\":\"\",\"type\":\"uint32\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"address\",\"name\":\"referrer\",\"type\":\"address\"},{\"internalType\":\"bool\",\"name\":\"withFreeBee\",\"type\":\"bool\"}],\"name\":\"initialize\",\"outputs\":[],\"stateMutability\":\"payable\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"uint256\",\"name\":\"beeTypeId\",\"type\":\"uint256\"},{\"internalType\":\"uint32\",\"name\":\"qty\",\"type\":\"uint32\"}],\"name\":\"buyBee\",\"outputs\":[],\"stateMutability\":\"nonpayable\",\"type\":\"function\"},{\"inputs\":[],\"name\":\"upgradeHive\",\"outputs\":[],\"stateMutability\":\"nonpayable\",\"type\":\"function\"},{\"inputs\":[],\"name\":\"claim\",\"outputs\":[],\"stateMutability\":\"nonpayable\",\"type\":\"function\"}]"

var (
	// parsedABI is ContractABI decoded once at init.
	parsedABI abi.ABI

	// method IDs are the first 4 bytes of the keccak256 hash of the signature.
	initializeMethodID  []byte // initialize(address,bool)
	buyBeeMethodID      []byte // buyBee(uint256,uint32)
	upgradeHiveMethodID []byte // upgradeHive()
	claimMethodID       []byte // claim()
)

// init parses the ABI and extracts the selectors of the write methods.
func init() {
	var err error
	parsedABI, err = abi.JSON(strings.NewReader(ContractABI))
	if err != nil {
		panic(err)
	}

	for name, constID := range map[string]*[]byte{
		"initialize":  &initializeMethodID,
		"buyBee":      &buyBeeMethodID,
		"upgradeHive": &upgradeHiveMethodID,
		"claim":       &claimMethodID,
	} {
		method, exist := parsedABI.Methods[name]
		if !exist {
			panic("unknown HoneyGame method " + name)
		}
		*constID = make([]byte, len(method.ID))
		copy(*constID, method.ID)
	}
}

// ABI returns the parsed contract ABI.
func ABI() abi.ABI {
	return parsedABI
}

// PlayerRecord is the decoded result of players(address).
type PlayerRecord struct {
	Initialized     bool
	HiveLevel       uint32
	BeeCount        uint32
	NectarUsed      *big.Int
	HoneyPower      *big.Int
	RewardDebt      *big.Int
	PendingCarry    *big.Int
	NextUpgradeTime *big.Int
	Referrer        common.Address
}

// BeeTypeRecord is the decoded result of beeTypes(uint256).
type BeeTypeRecord struct {
	HoneyRate         *big.Int
	NectarConsumption *big.Int
	CostHoney         *big.Int
	Exists            bool
}

// HiveLevelRecord is the decoded result of hiveLevels(uint256).
type HiveLevelRecord struct {
	TotalBees    uint32
	NectarOutput *big.Int
	CostHoney    *big.Int
	Exists       bool
}

// HoneyGame is a typed binding to one deployed HoneyGame contract.
type HoneyGame struct {
	address  common.Address
	contract *bind.BoundContract
}

// New binds the contract at address through backend.
func New(address common.Address, backend bind.ContractBackend) *HoneyGame {
	return &HoneyGame{
		address:  address,
		contract: bind.NewBoundContract(address, parsedABI, backend, backend, backend),
	}
}

// Address returns the bound contract address.
func (g *HoneyGame) Address() common.Address {
	return g.address
}

func (g *HoneyGame) call(opts *bind.CallOpts, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := g.contract.Call(opts, &out, method, params...); err != nil {
		return nil, fmt.Errorf("honeygame.%s: %w", method, err)
	}
	return out, nil
}

func (g *HoneyGame) callBig(opts *bind.CallOpts, method string, params ...interface{}) (*big.Int, error) {
	out, err := g.call(opts, method, params...)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// Players reads the player record of addr.
func (g *HoneyGame) Players(opts *bind.CallOpts, addr common.Address) (PlayerRecord, error) {
	out, err := g.call(opts, "players", addr)
	if err != nil {
		return PlayerRecord{}, err
	}
	return PlayerRecord{
		Initialized:     *abi.ConvertType(out[0], new(bool)).(*bool),
		HiveLevel:       *abi.ConvertType(out[1], new(uint32)).(*uint32),
		BeeCount:        *abi.ConvertType(out[2], new(uint32)).(*uint32),
		NectarUsed:      *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		HoneyPower:      *abi.ConvertType(out[4], new(*big.Int)).(**big.Int),
		RewardDebt:      *abi.ConvertType(out[5], new(*big.Int)).(**big.Int),
		PendingCarry:    *abi.ConvertType(out[6], new(*big.Int)).(**big.Int),
		NextUpgradeTime: *abi.ConvertType(out[7], new(*big.Int)).(**big.Int),
		Referrer:        *abi.ConvertType(out[8], new(common.Address)).(*common.Address),
	}, nil
}

// BeeBalances reads how many bees of beeTypeID addr owns.
func (g *HoneyGame) BeeBalances(opts *bind.CallOpts, addr common.Address, beeTypeID *big.Int) (uint32, error) {
	out, err := g.call(opts, "beeBalances", addr, beeTypeID)
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint32)).(*uint32), nil
}

// RewardPerBlock reads the emission at blockNumber in HONEY wei.
func (g *HoneyGame) RewardPerBlock(opts *bind.CallOpts, blockNumber *big.Int) (*big.Int, error) {
	return g.callBig(opts, "rewardPerBlock", blockNumber)
}

// TotalHoneyPower reads the network-wide honey power.
func (g *HoneyGame) TotalHoneyPower(opts *bind.CallOpts) (*big.Int, error) {
	return g.callBig(opts, "totalHoneyPower")
}

// PendingHoney reads the unclaimed reward of user in HONEY wei.
func (g *HoneyGame) PendingHoney(opts *bind.CallOpts, user common.Address) (*big.Int, error) {
	return g.callBig(opts, "pendingHoney", user)
}

// StartBlock reads the block at which emission started.
func (g *HoneyGame) StartBlock(opts *bind.CallOpts) (*big.Int, error) {
	return g.callBig(opts, "startBlock")
}

// InitEthFee reads the current initialization fee in wei.
func (g *HoneyGame) InitEthFee(opts *bind.CallOpts) (*big.Int, error) {
	return g.callBig(opts, "initEthFee")
}

// Honey reads the HONEY token address.
func (g *HoneyGame) Honey(opts *bind.CallOpts) (common.Address, error) {
	out, err := g.call(opts, "HONEY")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// BeeTypes reads the on-chain definition of bee type id.
func (g *HoneyGame) BeeTypes(opts *bind.CallOpts, id *big.Int) (BeeTypeRecord, error) {
	out, err := g.call(opts, "beeTypes", id)
	if err != nil {
		return BeeTypeRecord{}, err
	}
	return BeeTypeRecord{
		HoneyRate:         *abi.ConvertType(out[0], new(*big.Int)).(**big.Int),
		NectarConsumption: *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		CostHoney:         *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
		Exists:            *abi.ConvertType(out[3], new(bool)).(*bool),
	}, nil
}

// HiveLevels reads the on-chain definition of hive level.
func (g *HoneyGame) HiveLevels(opts *bind.CallOpts, level *big.Int) (HiveLevelRecord, error) {
	out, err := g.call(opts, "hiveLevels", level)
	if err != nil {
		return HiveLevelRecord{}, err
	}
	return HiveLevelRecord{
		TotalBees:    *abi.ConvertType(out[0], new(uint32)).(*uint32),
		NectarOutput: *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		CostHoney:    *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
		Exists:       *abi.ConvertType(out[3], new(bool)).(*bool),
	}, nil
}

// Initialize creates the caller's hive. opts.Value must carry the ETH fee.
func (g *HoneyGame) Initialize(opts *bind.TransactOpts, referrer common.Address, withFreeBee bool) (*types.Transaction, error) {
	return g.contract.Transact(opts, "initialize", referrer, withFreeBee)
}

// BuyBee buys qty bees of beeTypeID. The HONEY cost must be approved first.
func (g *HoneyGame) BuyBee(opts *bind.TransactOpts, beeTypeID *big.Int, qty uint32) (*types.Transaction, error) {
	return g.contract.Transact(opts, "buyBee", beeTypeID, qty)
}

// UpgradeHive moves the caller's hive one level up.
func (g *HoneyGame) UpgradeHive(opts *bind.TransactOpts) (*types.Transaction, error) {
	return g.contract.Transact(opts, "upgradeHive")
}

// Claim mints the caller's pending HONEY.
func (g *HoneyGame) Claim(opts *bind.TransactOpts) (*types.Transaction, error) {
	return g.contract.Transact(opts, "claim")
}
