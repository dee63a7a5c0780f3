package render

// CompositeVertexShader stretches the shared unit quad over the whole
// surface.
const CompositeVertexShader = `
#version 330 core
layout(location=0) in vec2 position;
layout(location=1) in vec2 tex_coords;
out vec2 v_tex_coords;
void main() {
    v_tex_coords = tex_coords;
    gl_Position = vec4(position * 2.0 - 1.0, 0.0, 1.0);
}
`

// DefaultFragmentShader adds the emissive step on top of the diffuse step,
// with the diffuse color boosted by the ambient term.
const DefaultFragmentShader = `
#version 330 core
in vec2 v_tex_coords;
out vec4 color;
uniform sampler2D diffuse_texture;
uniform sampler2D emissive_texture;
uniform float ambient;
uniform vec2 resolution;
void main() {
    vec4 diffuse = texture(diffuse_texture, v_tex_coords);
    vec4 emissive = texture(emissive_texture, v_tex_coords);
    color = vec4(diffuse.rgb * (1.0 + ambient) + emissive.rgb, max(diffuse.a, emissive.a));
}
`
