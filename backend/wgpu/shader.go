//go:build !nogpu

package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/translate.wgsl
var translateShaderSource string

// compileTranslateShader builds the translate shader module. It hands the
// WGSL source to the driver first and falls back to naga-compiled SPIR-V
// when the HAL rejects WGSL input.
func (d *Device) compileTranslateShader() (hal.ShaderModule, error) {
	mod, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "geom_translate",
		Source: hal.ShaderSource{WGSL: translateShaderSource},
	})
	if err == nil {
		return mod, nil
	}

	spirv, serr := compileToSPIRV(translateShaderSource)
	if serr != nil {
		return nil, fmt.Errorf("compile translate shader: %w (spirv fallback: %v)", err, serr)
	}
	slogger().Debug("wgpu: driver rejected WGSL, using naga SPIR-V", "words", len(spirv))
	return d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "geom_translate",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
}

// compileToSPIRV compiles WGSL source to SPIR-V words with naga.
func compileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("naga: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}
