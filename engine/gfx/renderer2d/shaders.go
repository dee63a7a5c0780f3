package renderer2d

const spriteVertexSource = `
#version 330 core
layout(location=0) in vec2 position;
layout(location=1) in vec2 tex_coords;
uniform mat4 matrix;
out vec2 v_tex_coords;
void main() {
    // Images are uploaded top row first.
    v_tex_coords = vec2(tex_coords.x, 1.0 - tex_coords.y);
    gl_Position = matrix * vec4(position, 0.0, 1.0);
}
`

const spriteFragmentSource = `
#version 330 core
in vec2 v_tex_coords;
uniform sampler2D tex;
uniform vec4 tint;
out vec4 color;
void main() {
    color = texture(tex, v_tex_coords) * tint;
}
`

const lineVertexSource = `
#version 330 core
layout(location=0) in vec2 position;
uniform mat4 matrix;
void main() {
    gl_Position = matrix * vec4(position, 0.0, 1.0);
}
`

const lineFragmentSource = `
#version 330 core
uniform vec4 line_color;
out vec4 color;
void main() {
    color = line_color;
}
`
