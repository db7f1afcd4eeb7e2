package arch

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/vybium/vybium-zkvm/internal/vybium-zkvm/memory"
)

// DefaultMaxSegmentLen bounds the instructions per segment so every segment's
// trace fits the proving engine's maximum provable height.
const DefaultMaxSegmentLen = (1 << 22) - 100

// MemoryConfig fixes the memory geometry. It is validated at load time and
// immutable afterwards.
type MemoryConfig struct {
	// AddressSpaceHeight bounds the address spaces to
	// [1, 1+2^AddressSpaceHeight).
	AddressSpaceHeight int `toml:"address_space_height"`

	// PointerMaxBits bounds pointers to [0, 2^PointerMaxBits).
	PointerMaxBits int `toml:"pointer_max_bits"`

	// ClkMaxBits bounds the timestamp.
	ClkMaxBits int `toml:"clk_max_bits"`

	// Decomp is the range-check decomposition parameter.
	Decomp int `toml:"decomp"`
}

// DefaultMemoryConfig mirrors the production geometry.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		AddressSpaceHeight: 3,
		PointerMaxBits:     29,
		ClkMaxBits:         29,
		Decomp:             16,
	}
}

// VmConfig is the immutable VM configuration: memory geometry, segment bound,
// and the enabled opcode families.
type VmConfig struct {
	Memory          MemoryConfig `toml:"memory"`
	NumPublicValues int          `toml:"num_public_values"`
	MaxSegmentLen   int          `toml:"max_segment_len"`

	// EnabledFamilies lists the opcode families to build chips for; empty
	// means all known families.
	EnabledFamilies []string `toml:"enabled_families"`
}

// DefaultVmConfig enables every opcode family with production bounds.
func DefaultVmConfig() VmConfig {
	return VmConfig{
		Memory:        DefaultMemoryConfig(),
		MaxSegmentLen: DefaultMaxSegmentLen,
	}
}

// Validate rejects geometries the Merkle tree cannot address.
func (c VmConfig) Validate() error {
	if c.Memory.AddressSpaceHeight < 0 {
		return fmt.Errorf("config: address_space_height must be >= 0, got %d", c.Memory.AddressSpaceHeight)
	}
	if c.Memory.PointerMaxBits < memory.ChunkBits || c.Memory.PointerMaxBits > 32 {
		return fmt.Errorf("config: pointer_max_bits must be in [%d, 32], got %d", memory.ChunkBits, c.Memory.PointerMaxBits)
	}
	if c.MaxSegmentLen <= 0 {
		return fmt.Errorf("config: max_segment_len must be positive, got %d", c.MaxSegmentLen)
	}
	return nil
}

// Dimensions derives the Merkle tree geometry: address spaces in the high
// levels, pointer chunks in the low levels.
func (c VmConfig) Dimensions() memory.Dimensions {
	return memory.Dimensions{
		AddressSpaceHeight: c.Memory.AddressSpaceHeight,
		AddressHeight:      c.Memory.PointerMaxBits - memory.ChunkBits,
		AddressSpaceOffset: 1,
	}
}

// ReadConfigFile loads and validates a VmConfig from a TOML file. Fields not
// present keep their defaults.
func ReadConfigFile(path string) (VmConfig, error) {
	config := DefaultVmConfig()
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return VmConfig{}, fmt.Errorf("could not load config file %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return VmConfig{}, err
	}
	return config, nil
}
