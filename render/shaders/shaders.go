package shaders

import (
	_ "embed"
)

//go:embed lighting.vert
var LightingVert string

//go:embed lighting.frag
var LightingFrag string
