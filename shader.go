package chroma

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// Shader generation. Every space's inverse transform is mirrored in GLSL
// and WGSL so the GPU can decode packed colors per pixel. The sources are
// rendered from templates fed the same constant values the CPU codecs
// use, which is what keeps the two sides seam-free: there is exactly one
// definition of every matrix, threshold and exponent in this package.

// ShaderSources is the generated shader pair for one space.
type ShaderSources struct {
	// Space is the space's Name().
	Space string

	// VertexGLSL and FragmentGLSL target GLSL 3.30 core.
	VertexGLSL   string
	FragmentGLSL string

	// WGSL is a single module with vs_main and fs_main entry points.
	WGSL string
}

// GenerateShaders renders the GLSL and WGSL sources that decode the given
// space on the GPU, including tweak compositing. Generation is cheap
// enough to run at pipeline setup; callers that rebuild pipelines per
// frame should cache the result.
func GenerateShaders(s Space) (ShaderSources, error) {
	ctx := shaderContext(s)
	frag, err := fragmentGLSLTemplate.Execute(ctx)
	if err != nil {
		return ShaderSources{}, fmt.Errorf("render %s fragment glsl: %w", s.Name(), err)
	}
	wgsl, err := wgslTemplate.Execute(ctx)
	if err != nil {
		return ShaderSources{}, fmt.Errorf("render %s wgsl: %w", s.Name(), err)
	}
	return ShaderSources{
		Space:        s.Name(),
		VertexGLSL:   vertexGLSL,
		FragmentGLSL: frag,
		WGSL:         wgsl,
	}, nil
}

// floatLit formats a constant for shader source. GLSL and WGSL both
// reject a bare integer where a float is expected, so plain values keep a
// trailing ".0".
func floatLit(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// glslMat3 emits a row-major [9]float64 as a GLSL mat3 constructor.
// GLSL constructors are column-major, so the values are transposed here
// and M * v in the shader matches mul3 on the CPU.
func glslMat3(m [9]float64) string {
	return fmt.Sprintf("mat3(%s, %s, %s, %s, %s, %s, %s, %s, %s)",
		floatLit(m[0]), floatLit(m[3]), floatLit(m[6]),
		floatLit(m[1]), floatLit(m[4]), floatLit(m[7]),
		floatLit(m[2]), floatLit(m[5]), floatLit(m[8]))
}

// wgslMat3 is glslMat3 for WGSL's mat3x3<f32> column constructor.
func wgslMat3(m [9]float64) string {
	col := func(a, b, c float64) string {
		return fmt.Sprintf("vec3<f32>(%s, %s, %s)", floatLit(a), floatLit(b), floatLit(c))
	}
	return fmt.Sprintf("mat3x3<f32>(%s, %s, %s)",
		col(m[0], m[3], m[6]), col(m[1], m[4], m[7]), col(m[2], m[5], m[8]))
}

// glslVec3Rows emits the rows of a row-major matrix as a GLSL vec3 array,
// used where the shader iterates rows rather than multiplying.
func glslVec3Rows(m [9]float64) string {
	row := func(i int) string {
		return fmt.Sprintf("vec3(%s, %s, %s)", floatLit(m[i]), floatLit(m[i+1]), floatLit(m[i+2]))
	}
	return fmt.Sprintf("vec3[3](%s, %s, %s)", row(0), row(3), row(6))
}

// wgslVec3Rows is glslVec3Rows for WGSL.
func wgslVec3Rows(m [9]float64) string {
	row := func(i int) string {
		return fmt.Sprintf("vec3<f32>(%s, %s, %s)", floatLit(m[i]), floatLit(m[i+1]), floatLit(m[i+2]))
	}
	return fmt.Sprintf("array<vec3<f32>, 3>(%s, %s, %s)", row(0), row(3), row(6))
}

// shaderContext assembles every constant a space's templates can refer
// to. Unused keys are harmless; sharing one context keeps the GLSL and
// WGSL templates in lockstep.
func shaderContext(s Space) pongo2.Context {
	roles := s.roles()
	plainRGB := "false"
	if roles.hue == -1 && roles.sat == -1 && roles.light == -1 {
		plainRGB = "true"
	}
	return pongo2.Context{
		"space":     s.Name(),
		"hue_ch":    roles.hue,
		"sat_ch":    roles.sat,
		"light_ch":  roles.light,
		"plain_rgb": plainRGB,

		"tau": floatLit(6.283185307179586),

		"srgb_linear_threshold": floatLit(srgbLinearThreshold),
		"srgb_linear_slope":     floatLit(srgbLinearSlope),
		"srgb_gamma":            floatLit(srgbGamma),
		"srgb_gamma_offset":     floatLit(srgbGammaOffset),
		"srgb_gamma_scale":      floatLit(1 + srgbGammaOffset),

		"xyz_to_rgb_glsl":      glslMat3(xyzToRGBMatrix),
		"xyz_to_rgb_wgsl":      wgslMat3(xyzToRGBMatrix),
		"xyz_to_rgb_rows_glsl": glslVec3Rows(xyzToRGBMatrix),
		"xyz_to_rgb_rows_wgsl": wgslVec3Rows(xyzToRGBMatrix),

		"luv_kappa":   floatLit(luvKappa),
		"luv_epsilon": floatLit(luvEpsilon),
		"luv_ref_u":   floatLit(luvRefU),
		"luv_ref_v":   floatLit(luvRefV),

		"lab_kappa":      floatLit(labKappa),
		"lab_epsilon":    floatLit(labEpsilon),
		"lab_white_x":    floatLit(labWhiteX),
		"lab_white_z":    floatLit(labWhiteZ),
		"lab_axis_scale": floatLit(labAxisScale),

		"ipt_exponent":     floatLit(iptExponent),
		"ipt_axis_scale":   floatLit(iptAxisScale),
		"ipt_to_lms_glsl":  glslMat3(iptToLMSMatrix),
		"ipt_to_lms_wgsl":  wgslMat3(iptToLMSMatrix),
		"lms_to_xyz_glsl":  glslMat3(lmsToXYZMatrix),
		"lms_to_xyz_wgsl":  wgslMat3(lmsToXYZMatrix),

		"oklab_m2inv_glsl": glslMat3(oklabM2Inv),
		"oklab_m2inv_wgsl": wgslMat3(oklabM2Inv),
		"oklab_m1inv_glsl": glslMat3(oklabM1Inv),
		"oklab_m1inv_wgsl": wgslMat3(oklabM1Inv),
	}
}

// vertexGLSL is shared by every space: decoding happens per fragment.
const vertexGLSL = `#version 330 core

layout(location = 0) in vec2 a_pos;
layout(location = 1) in vec4 a_color;
layout(location = 2) in vec4 a_tweak;

uniform mat4 u_transform;

out vec4 v_color;
out vec4 v_tweak;

void main() {
    gl_Position = u_transform * vec4(a_pos, 0.0, 1.0);
    // Alpha has 7 effective bits (its low bit is cleared when packing),
    // so 254/255 is the largest value the attribute can carry.
    v_color = vec4(a_color.rgb, a_color.a * (255.0 / 254.0));
    v_tweak = a_tweak;
}
`

var fragmentGLSLTemplate = pongo2.Must(pongo2.FromString(`{% autoescape off %}#version 330 core

in vec4 v_color;
in vec4 v_tweak;
out vec4 f_color;

const int HUE_CH = {{ hue_ch }};
const int SAT_CH = {{ sat_ch }};
const int LIGHT_CH = {{ light_ch }};
const bool PLAIN_RGB = {{ plain_rgb }};
const float TAU = {{ tau }};
{% if space != "rgb" and space != "ipt" %}
float linearToSrgb(float c) {
    if (c <= {{ srgb_linear_threshold }}) {
        return c * {{ srgb_linear_slope }};
    }
    return {{ srgb_gamma_scale }} * pow(c, 1.0 / {{ srgb_gamma }}) - {{ srgb_gamma_offset }};
}

vec3 gammaEncode(vec3 rgb) {
    rgb = clamp(rgb, 0.0, 1.0);
    return vec3(linearToSrgb(rgb.r), linearToSrgb(rgb.g), linearToSrgb(rgb.b));
}
{% endif %}{% if space == "hsluv" %}
const float KAPPA = {{ luv_kappa }};
const float EPSILON = {{ luv_epsilon }};
const float REF_U = {{ luv_ref_u }};
const float REF_V = {{ luv_ref_v }};
const mat3 XYZ_TO_RGB = {{ xyz_to_rgb_glsl }};
const vec3 XYZ_TO_RGB_ROWS[3] = {{ xyz_to_rgb_rows_glsl }};

float maxChromaForLH(float L, float H) {
    float sub1 = pow(L + 16.0, 3.0) / 1560896.0;
    float sub2 = (sub1 > EPSILON) ? sub1 : L / KAPPA;
    float s = sin(H * TAU);
    float c = cos(H * TAU);
    float minLen = 1.0e20;
    for (int ch = 0; ch < 3; ch++) {
        vec3 m = XYZ_TO_RGB_ROWS[ch];
        for (int t = 0; t < 2; t++) {
            float top1 = (284517.0 * m.x - 94839.0 * m.z) * sub2;
            float top2 = (838422.0 * m.z + 769860.0 * m.y + 731718.0 * m.x) * L * sub2
                - 769860.0 * float(t) * L;
            float bottom = (632260.0 * m.z - 126452.0 * m.y) * sub2 + 126452.0 * float(t);
            float denom = s - (top1 / bottom) * c;
            if (denom != 0.0) {
                float len = (top2 / bottom) / denom;
                if (len > 0.0) {
                    minLen = min(minLen, len);
                }
            }
        }
    }
    return minLen;
}

vec3 toDisplay(vec3 ch) {
    if (ch.z <= 0.0) {
        return vec3(0.0);
    }
    if (ch.z >= 1.0) {
        return vec3(1.0);
    }
    float L = ch.z * 100.0;
    float C = maxChromaForLH(L, ch.x) * ch.y;
    float u = C * cos(ch.x * TAU);
    float v = C * sin(ch.x * TAU);
    float y = (L > 8.0) ? pow((L + 16.0) / 116.0, 3.0) : L / KAPPA;
    float varU = u / (13.0 * L) + REF_U;
    float varV = v / (13.0 * L) + REF_V;
    float x = y * 9.0 * varU / (4.0 * varV);
    float z = y * (12.0 - 3.0 * varU - 20.0 * varV) / (4.0 * varV);
    return gammaEncode(XYZ_TO_RGB * vec3(x, y, z));
}
{% elif space == "cielab" %}
const float KAPPA = {{ lab_kappa }};
const float EPSILON = {{ lab_epsilon }};
const mat3 XYZ_TO_RGB = {{ xyz_to_rgb_glsl }};

vec3 toDisplay(vec3 ch) {
    if (ch.x <= 0.0) {
        return vec3(0.0);
    }
    if (ch.x >= 1.0) {
        return vec3(1.0);
    }
    float L = ch.x * 100.0;
    float a = (ch.y - 0.5) * {{ lab_axis_scale }};
    float b = (ch.z - 0.5) * {{ lab_axis_scale }};
    float f1 = (L + 16.0) / 116.0;
    float f0 = a / 500.0 + f1;
    float f2 = f1 - b / 200.0;
    float x = (f0 * f0 * f0 > EPSILON) ? f0 * f0 * f0 : (116.0 * f0 - 16.0) / KAPPA;
    float y = (L > KAPPA * EPSILON) ? f1 * f1 * f1 : L / KAPPA;
    float z = (f2 * f2 * f2 > EPSILON) ? f2 * f2 * f2 : (116.0 * f2 - 16.0) / KAPPA;
    return gammaEncode(XYZ_TO_RGB * vec3(x * {{ lab_white_x }}, y, z * {{ lab_white_z }}));
}
{% elif space == "ipt" or space == "ipt_hq" %}
const mat3 IPT_TO_LMS = {{ ipt_to_lms_glsl }};
const mat3 LMS_TO_XYZ = {{ lms_to_xyz_glsl }};
const mat3 XYZ_TO_RGB = {{ xyz_to_rgb_glsl }};

float iptInverse(float v) {
    return sign(v) * pow(abs(v), 1.0 / {{ ipt_exponent }});
}

vec3 toDisplay(vec3 ch) {
    if (ch.x <= 0.0) {
        return vec3(0.0);
    }
    if (ch.x >= 1.0) {
        return vec3(1.0);
    }
    vec3 ipt = vec3(ch.x, (ch.y - 0.5) * {{ ipt_axis_scale }}, (ch.z - 0.5) * {{ ipt_axis_scale }});
    vec3 lms = IPT_TO_LMS * ipt;
    lms = vec3(iptInverse(lms.x), iptInverse(lms.y), iptInverse(lms.z));
    vec3 rgb = XYZ_TO_RGB * (LMS_TO_XYZ * lms);
{% if space == "ipt_hq" %}    return gammaEncode(rgb);
{% else %}    return rgb;
{% endif %}}
{% elif space == "oklab" %}
const mat3 OKLAB_M2INV = {{ oklab_m2inv_glsl }};
const mat3 OKLAB_M1INV = {{ oklab_m1inv_glsl }};

vec3 toDisplay(vec3 ch) {
    if (ch.x <= 0.0) {
        return vec3(0.0);
    }
    if (ch.x >= 1.0) {
        return vec3(1.0);
    }
    vec3 lab = vec3(ch.x, ch.y - 0.5, ch.z - 0.5);
    vec3 lms = OKLAB_M2INV * lab;
    lms = lms * lms * lms;
    return gammaEncode(OKLAB_M1INV * lms);
}
{% else %}
vec3 toDisplay(vec3 ch) {
    return ch;
}
{% endif %}
vec3 applyTweak(vec3 ch, vec4 t) {
    for (int i = 0; i < 3; i++) {
        if (i == HUE_CH) {
            ch[i] = fract(ch[i] + t[i] - 0.5);
        } else if (i == LIGHT_CH || i == SAT_CH || PLAIN_RGB) {
            ch[i] = clamp(ch[i] * t[i] * 2.0, 0.0, 1.0);
        } else {
            ch[i] = clamp(0.5 + (ch[i] - 0.5) * t[i] * 2.0, 0.0, 1.0);
        }
    }
    for (int i = 0; i < 3; i++) {
        if (LIGHT_CH < 0 || i == LIGHT_CH) {
            ch[i] = clamp((ch[i] - 0.5) * t.a * 2.0 + 0.5, 0.0, 1.0);
        }
    }
    return ch;
}

void main() {
    vec3 ch = applyTweak(v_color.rgb, v_tweak);
    vec3 rgb = toDisplay(ch);
    f_color = vec4(clamp(rgb, 0.0, 1.0), v_color.a);
}
{% endautoescape %}`))

var wgslTemplate = pongo2.Must(pongo2.FromString(`{% autoescape off %}// {{ space }} decode pipeline.

struct Uniforms {
    transform: mat4x4<f32>,
}

@group(0) @binding(0) var<uniform> uniforms: Uniforms;

struct VertexInput {
    @location(0) pos: vec2<f32>,
    @location(1) color: vec4<f32>,
    @location(2) tweak: vec4<f32>,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
    @location(1) tweak: vec4<f32>,
}

const HUE_CH: i32 = {{ hue_ch }};
const SAT_CH: i32 = {{ sat_ch }};
const LIGHT_CH: i32 = {{ light_ch }};
const PLAIN_RGB: bool = {{ plain_rgb }};
const TAU: f32 = {{ tau }};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = uniforms.transform * vec4<f32>(in.pos, 0.0, 1.0);
    // 254/255 is full opacity: the packed alpha low bit is cleared.
    out.color = vec4<f32>(in.color.xyz, in.color.w * (255.0 / 254.0));
    out.tweak = in.tweak;
    return out;
}
{% if space != "rgb" and space != "ipt" %}
fn linear_to_srgb(c: f32) -> f32 {
    if (c <= {{ srgb_linear_threshold }}) {
        return c * {{ srgb_linear_slope }};
    }
    return {{ srgb_gamma_scale }} * pow(c, 1.0 / {{ srgb_gamma }}) - {{ srgb_gamma_offset }};
}

fn gamma_encode(rgb_in: vec3<f32>) -> vec3<f32> {
    let rgb = clamp(rgb_in, vec3<f32>(0.0), vec3<f32>(1.0));
    return vec3<f32>(linear_to_srgb(rgb.x), linear_to_srgb(rgb.y), linear_to_srgb(rgb.z));
}
{% endif %}{% if space == "hsluv" %}
const KAPPA: f32 = {{ luv_kappa }};
const EPSILON: f32 = {{ luv_epsilon }};
const REF_U: f32 = {{ luv_ref_u }};
const REF_V: f32 = {{ luv_ref_v }};
const XYZ_TO_RGB: mat3x3<f32> = {{ xyz_to_rgb_wgsl }};

fn max_chroma_for_lh(l: f32, h: f32) -> f32 {
    var rows = {{ xyz_to_rgb_rows_wgsl }};
    let sub1 = pow(l + 16.0, 3.0) / 1560896.0;
    let sub2 = select(l / KAPPA, sub1, sub1 > EPSILON);
    let s = sin(h * TAU);
    let c = cos(h * TAU);
    var min_len = 1.0e20;
    for (var ch: i32 = 0; ch < 3; ch++) {
        let m = rows[ch];
        for (var t: i32 = 0; t < 2; t++) {
            let tf = f32(t);
            let top1 = (284517.0 * m.x - 94839.0 * m.z) * sub2;
            let top2 = (838422.0 * m.z + 769860.0 * m.y + 731718.0 * m.x) * l * sub2
                - 769860.0 * tf * l;
            let bottom = (632260.0 * m.z - 126452.0 * m.y) * sub2 + 126452.0 * tf;
            let denom = s - (top1 / bottom) * c;
            if (denom != 0.0) {
                let len = (top2 / bottom) / denom;
                if (len > 0.0) {
                    min_len = min(min_len, len);
                }
            }
        }
    }
    return min_len;
}

fn to_display(ch: vec3<f32>) -> vec3<f32> {
    if (ch.z <= 0.0) {
        return vec3<f32>(0.0);
    }
    if (ch.z >= 1.0) {
        return vec3<f32>(1.0);
    }
    let l = ch.z * 100.0;
    let chroma = max_chroma_for_lh(l, ch.x) * ch.y;
    let u = chroma * cos(ch.x * TAU);
    let v = chroma * sin(ch.x * TAU);
    let y = select(l / KAPPA, pow((l + 16.0) / 116.0, 3.0), l > 8.0);
    let var_u = u / (13.0 * l) + REF_U;
    let var_v = v / (13.0 * l) + REF_V;
    let x = y * 9.0 * var_u / (4.0 * var_v);
    let z = y * (12.0 - 3.0 * var_u - 20.0 * var_v) / (4.0 * var_v);
    return gamma_encode(XYZ_TO_RGB * vec3<f32>(x, y, z));
}
{% elif space == "cielab" %}
const KAPPA: f32 = {{ lab_kappa }};
const EPSILON: f32 = {{ lab_epsilon }};
const XYZ_TO_RGB: mat3x3<f32> = {{ xyz_to_rgb_wgsl }};

fn to_display(ch: vec3<f32>) -> vec3<f32> {
    if (ch.x <= 0.0) {
        return vec3<f32>(0.0);
    }
    if (ch.x >= 1.0) {
        return vec3<f32>(1.0);
    }
    let l = ch.x * 100.0;
    let a = (ch.y - 0.5) * {{ lab_axis_scale }};
    let b = (ch.z - 0.5) * {{ lab_axis_scale }};
    let f1 = (l + 16.0) / 116.0;
    let f0 = a / 500.0 + f1;
    let f2 = f1 - b / 200.0;
    let x = select((116.0 * f0 - 16.0) / KAPPA, f0 * f0 * f0, f0 * f0 * f0 > EPSILON);
    let y = select(l / KAPPA, f1 * f1 * f1, l > KAPPA * EPSILON);
    let z = select((116.0 * f2 - 16.0) / KAPPA, f2 * f2 * f2, f2 * f2 * f2 > EPSILON);
    return gamma_encode(XYZ_TO_RGB * vec3<f32>(x * {{ lab_white_x }}, y, z * {{ lab_white_z }}));
}
{% elif space == "ipt" or space == "ipt_hq" %}
const IPT_TO_LMS: mat3x3<f32> = {{ ipt_to_lms_wgsl }};
const LMS_TO_XYZ: mat3x3<f32> = {{ lms_to_xyz_wgsl }};
const XYZ_TO_RGB: mat3x3<f32> = {{ xyz_to_rgb_wgsl }};

fn ipt_inverse(v: f32) -> f32 {
    return sign(v) * pow(abs(v), 1.0 / {{ ipt_exponent }});
}

fn to_display(ch: vec3<f32>) -> vec3<f32> {
    if (ch.x <= 0.0) {
        return vec3<f32>(0.0);
    }
    if (ch.x >= 1.0) {
        return vec3<f32>(1.0);
    }
    let ipt = vec3<f32>(ch.x, (ch.y - 0.5) * {{ ipt_axis_scale }}, (ch.z - 0.5) * {{ ipt_axis_scale }});
    var lms = IPT_TO_LMS * ipt;
    lms = vec3<f32>(ipt_inverse(lms.x), ipt_inverse(lms.y), ipt_inverse(lms.z));
    let rgb = XYZ_TO_RGB * (LMS_TO_XYZ * lms);
{% if space == "ipt_hq" %}    return gamma_encode(rgb);
{% else %}    return rgb;
{% endif %}}
{% elif space == "oklab" %}
const OKLAB_M2INV: mat3x3<f32> = {{ oklab_m2inv_wgsl }};
const OKLAB_M1INV: mat3x3<f32> = {{ oklab_m1inv_wgsl }};

fn to_display(ch: vec3<f32>) -> vec3<f32> {
    if (ch.x <= 0.0) {
        return vec3<f32>(0.0);
    }
    if (ch.x >= 1.0) {
        return vec3<f32>(1.0);
    }
    let lab = vec3<f32>(ch.x, ch.y - 0.5, ch.z - 0.5);
    let lms = OKLAB_M2INV * lab;
    return gamma_encode(OKLAB_M1INV * (lms * lms * lms));
}
{% else %}
fn to_display(ch: vec3<f32>) -> vec3<f32> {
    return ch;
}
{% endif %}
fn apply_tweak(ch_in: vec3<f32>, t: vec4<f32>) -> vec3<f32> {
    var ch = ch_in;
    for (var i: i32 = 0; i < 3; i++) {
        if (i == HUE_CH) {
            ch[i] = fract(ch[i] + t[i] - 0.5);
        } else if (i == LIGHT_CH || i == SAT_CH || PLAIN_RGB) {
            ch[i] = clamp(ch[i] * t[i] * 2.0, 0.0, 1.0);
        } else {
            ch[i] = clamp(0.5 + (ch[i] - 0.5) * t[i] * 2.0, 0.0, 1.0);
        }
    }
    for (var i: i32 = 0; i < 3; i++) {
        if (LIGHT_CH < 0 || i == LIGHT_CH) {
            ch[i] = clamp((ch[i] - 0.5) * t.w * 2.0 + 0.5, 0.0, 1.0);
        }
    }
    return ch;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let ch = apply_tweak(in.color.xyz, in.tweak);
    let rgb = to_display(ch);
    return vec4<f32>(clamp(rgb, vec3<f32>(0.0), vec3<f32>(1.0)), in.color.w);
}
{% endautoescape %}`))
