package renderer

// Fog is applied identically in every program: exp2 falloff on view depth.
const fogGLSL = `
uniform bool uFogEnabled;
uniform vec3 uFogColor;
uniform float uFogDensity;

vec3 applyFog(vec3 color, float depth) {
	if (!uFogEnabled) {
		return color;
	}
	float f = 1.0 - exp(-uFogDensity * uFogDensity * depth * depth);
	return mix(color, uFogColor, clamp(f, 0.0, 1.0));
}
`

const lineVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vColor;
out float vDepth;

void main() {
	vec4 viewPos = uView * uModel * vec4(aPos, 1.0);
	vColor = aColor;
	vDepth = -viewPos.z;
	gl_Position = uProjection * viewPos;
}
`

const lineFragmentShader = `#version 410 core
in vec3 vColor;
in float vDepth;

uniform vec3 uColor;
uniform float uOpacity;
uniform bool uVertexColor;
` + fogGLSL + `
out vec4 FragColor;

void main() {
	vec3 c = uVertexColor ? vColor : uColor;
	FragColor = vec4(applyFog(c, vDepth), uOpacity);
}
`

const pointVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform float uSize;
uniform float uScale;
uniform float uViewportHeight;

out float vDepth;

void main() {
	vec4 viewPos = uView * uModel * vec4(aPos, 1.0);
	vDepth = -viewPos.z;
	gl_PointSize = uSize * uScale * (uViewportHeight * 0.5) / max(vDepth, 0.0001);
	gl_Position = uProjection * viewPos;
}
`

const pointFragmentShader = `#version 410 core
in float vDepth;

uniform vec3 uColor;
uniform float uOpacity;
uniform sampler2D uSprite;
` + fogGLSL + `
out vec4 FragColor;

void main() {
	float a = texture(uSprite, gl_PointCoord).r;
	if (a < 0.05) {
		discard;
	}
	FragColor = vec4(applyFog(uColor, vDepth), a * uOpacity);
}
`

const barVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;
out vec3 vColor;
out float vDepth;

void main() {
	vec4 viewPos = uView * vec4(aPos, 1.0);
	vNormal = aNormal;
	vColor = aColor;
	vDepth = -viewPos.z;
	gl_Position = uProjection * viewPos;
}
`

const barFragmentShader = `#version 410 core
in vec3 vNormal;
in vec3 vColor;
in float vDepth;

uniform vec3 uLightDir[2];
uniform vec3 uLightColor[2];
uniform float uAmbient;
uniform float uOpacity;
` + fogGLSL + `
out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 light = vec3(uAmbient);
	for (int i = 0; i < 2; i++) {
		light += uLightColor[i] * max(dot(n, uLightDir[i]), 0.0);
	}
	FragColor = vec4(applyFog(vColor * light, vDepth), uOpacity);
}
`
