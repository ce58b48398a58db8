// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/layer2d"
)

// BlendComponent describes how one channel group is blended.
type BlendComponent struct {
	SrcFactor gputypes.BlendFactor
	DstFactor gputypes.BlendFactor
	Operation gputypes.BlendOperation
}

// BlendState is the fixed-function blend configuration for a draw call.
type BlendState struct {
	Color BlendComponent
	Alpha BlendComponent
}

var (
	alphaOver = BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		Operation: gputypes.BlendOperationAdd,
	}
	replace = BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorZero,
		Operation: gputypes.BlendOperationAdd,
	}
)

// BlendStateFor maps a layer blend mode to the pipeline blend state.
// Colors are straight alpha; the alpha channel always accumulates coverage.
func BlendStateFor(m layer2d.BlendMode) BlendState {
	switch m {
	case layer2d.BlendAdd:
		return BlendState{
			Color: BlendComponent{gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOne, gputypes.BlendOperationAdd},
			Alpha: alphaOver,
		}
	case layer2d.BlendMultiply:
		return BlendState{
			Color: BlendComponent{gputypes.BlendFactorDst, gputypes.BlendFactorZero, gputypes.BlendOperationAdd},
			Alpha: alphaOver,
		}
	case layer2d.BlendScreen:
		return BlendState{
			Color: BlendComponent{gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrc, gputypes.BlendOperationAdd},
			Alpha: alphaOver,
		}
	case layer2d.BlendLighten:
		return BlendState{
			Color: BlendComponent{gputypes.BlendFactorOne, gputypes.BlendFactorOne, gputypes.BlendOperationMax},
			Alpha: alphaOver,
		}
	case layer2d.BlendDarken:
		return BlendState{
			Color: BlendComponent{gputypes.BlendFactorOne, gputypes.BlendFactorOne, gputypes.BlendOperationMin},
			Alpha: alphaOver,
		}
	case layer2d.BlendReplace:
		return BlendState{Color: replace, Alpha: replace}
	default:
		return BlendState{
			Color: BlendComponent{gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha, gputypes.BlendOperationAdd},
			Alpha: alphaOver,
		}
	}
}
