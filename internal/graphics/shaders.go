package graphics

// Every program reads the per-instance model matrix from locations 2..5.

const commonVertexHeader = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in mat4 aModel;
uniform mat4 view;
uniform mat4 proj;
`

const srgbEncode = `
vec3 linearToSRGB(vec3 c) {
	vec3 lo = c * 12.92;
	vec3 hi = 1.055 * pow(c, vec3(1.0 / 2.4)) - 0.055;
	return mix(lo, hi, step(vec3(0.0031308), c));
}

vec3 srgbToLinear(vec3 c) {
	vec3 lo = c / 12.92;
	vec3 hi = pow((c + 0.055) / 1.055, vec3(2.4));
	return mix(lo, hi, step(vec3(0.04045), c));
}
`

var matcapVertexShader = commonVertexHeader + `
out vec3 vNormal;
out vec3 vViewPos;
void main() {
	mat4 modelView = view * aModel;
	vec4 mv = modelView * vec4(aPos, 1.0);
	vViewPos = -mv.xyz;
	vNormal = normalize(transpose(inverse(mat3(modelView))) * aNormal);
	gl_Position = proj * mv;
}
`

var matcapFragmentShader = `#version 410 core
in vec3 vNormal;
in vec3 vViewPos;
uniform sampler2D matcap;
uniform vec3 color;
out vec4 FragColor;
` + srgbEncode + `
void main() {
	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	vec3 viewDir = normalize(vViewPos);
	vec3 x = normalize(vec3(viewDir.z, 0.0, -viewDir.x));
	vec3 y = cross(viewDir, x);
	vec2 uv = vec2(dot(x, n), dot(y, n)) * 0.495 + 0.5;
	vec3 c = color * texture(matcap, uv).rgb;
	FragColor = vec4(linearToSRGB(c), 1.0);
}
`

var basicVertexShader = commonVertexHeader + `
void main() {
	gl_Position = proj * view * aModel * vec4(aPos, 1.0);
}
`

var basicFragmentShader = `#version 410 core
uniform vec3 color;
out vec4 FragColor;
void main() {
	FragColor = vec4(color, 1.0);
}
`

var pointsVertexShader = commonVertexHeader + `
uniform float size;
uniform float scale;
uniform bool sizeAttenuation;
void main() {
	vec4 mv = view * aModel * vec4(aPos, 1.0);
	float s = size * length(aModel[0].xyz);
	if (sizeAttenuation) {
		s *= scale / -mv.z;
	}
	gl_PointSize = max(s, 1.0);
	gl_Position = proj * mv;
}
`

var pointsFragmentShader = `#version 410 core
uniform vec3 color;
uniform sampler2D sprite;
uniform bool hasSprite;
out vec4 FragColor;
` + srgbEncode + `
void main() {
	// Sprites sample as linear, so the colour is mixed and encoded in linear space
	vec4 c = vec4(srgbToLinear(color), 1.0);
	if (hasSprite) {
		c *= texture(sprite, gl_PointCoord);
	} else if (length(gl_PointCoord - vec2(0.5)) > 0.5) {
		discard;
	}
	if (c.a < 0.01) {
		discard;
	}
	FragColor = vec4(linearToSRGB(c.rgb), c.a);
}
`
