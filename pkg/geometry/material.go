package geometry

// TextureType enumerates the texture slots a material can reference.
type TextureType int

const (
	TextureDiffuse TextureType = iota
	TextureNormal
	TextureSpecular
	TextureRoughness
	TextureMetallic
	TextureEmission
	TextureOcclusion
)

func (t TextureType) String() string {
	switch t {
	case TextureDiffuse:
		return "diffuse"
	case TextureNormal:
		return "normal"
	case TextureSpecular:
		return "specular"
	case TextureRoughness:
		return "roughness"
	case TextureMetallic:
		return "metallic"
	case TextureEmission:
		return "emission"
	case TextureOcclusion:
		return "occlusion"
	default:
		return "unknown"
	}
}

// Material is pure surface data consumed by exporters.
type Material struct {
	Name      string                 `json:"name" yaml:"name"`
	Ambient   [4]float64             `json:"ambient" yaml:"ambient"`
	Diffuse   [4]float64             `json:"diffuse" yaml:"diffuse"`
	Specular  [4]float64             `json:"specular" yaml:"specular"`
	Shininess float64                `json:"shininess" yaml:"shininess"`
	Textures  map[TextureType]string `json:"textures,omitempty" yaml:"-"`
}

// NewMaterial returns a grey material with a white specular highlight.
func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		Ambient:   [4]float64{0.2, 0.2, 0.2, 1.0},
		Diffuse:   [4]float64{0.8, 0.8, 0.8, 1.0},
		Specular:  [4]float64{1.0, 1.0, 1.0, 1.0},
		Shininess: 32.0,
		Textures:  make(map[TextureType]string),
	}
}

// Clone returns a deep copy of the material.
func (m *Material) Clone() *Material {
	out := *m
	out.Textures = make(map[TextureType]string, len(m.Textures))
	for k, v := range m.Textures {
		out.Textures[k] = v
	}
	return &out
}
