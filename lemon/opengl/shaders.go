package opengl

// compositeVertex maps pixel positions (origin top-left) to clip space.
const compositeVertex = `#version 150

in vec2 aPos;
in vec4 aColor;

uniform vec2 uViewport;

out vec4 vColor;

void main() {
	gl_Position = vec4(aPos.x * 2.0 / uViewport.x - 1.0, 1.0 - aPos.y * 2.0 / uViewport.y, 0.0, 1.0);
	vColor = aColor;
}
`

const compositeFragment = `#version 150

in vec4 vColor;

out vec4 fragColor;

void main() {
	fragColor = vColor;
}
`

// swapchainVertex emits a full-screen triangle strip from gl_VertexID, so
// blits need no vertex buffer.
const swapchainVertex = `#version 150

out vec2 xy;

void main() {
	xy = vec2(float(-1 + int(gl_VertexID > 1) * 2), float(-1 + int(gl_VertexID % 2) * 2));
	gl_Position = vec4(xy, 0.0, 1.0);
}
`

const swapchainFragment = `#version 150

in vec2 xy;

uniform sampler2D uSampler;

out vec4 fragColor;

void main() {
	fragColor = texture(uSampler, (xy + 1.0) * 0.5);
}
`
