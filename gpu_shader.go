//go:build !headless

// gpu_shader.go - embedded SPIR-V compute kernel for the checksum search

// SPDX-License-Identifier: GPL-3.0-or-later

/*
gpu_shader.go holds the GLSL source, as a comment, of the compute kernel
that finishes the X-dependent tail of round 1007 and all of round 1008
for a batch of candidate X values. The embedded checksumKernelSPIRV is
only a SPIR-V module header with no kernel body, so a Vulkan pipeline
cannot be built from it; the compiled kernel is produced with:

  glslc -O --target-env=vulkan1.2 -fshader-stage=compute -o shader.spv shader.glsl

The kernel binds two storage buffers (state @ 0, result @ 1) and reads a
single 4-byte push constant (the X-base for this dispatch), matching the
GPU compute driver's descriptor set layout in gpu_compute.go.
*/

package main

// GLSL reference source for checksumKernelSPIRV.
//
// #version 450
// #extension GL_ARB_gpu_shader_int64 : require
//
// layout(local_size_x = 1, local_size_y = 1) in;
//
// const uint BATCH_COUNT = 128;
// const uint MAGIC = 0x6C078965u;
//
// layout(binding = 0, std430) buffer StateBuffer {
//     uint state[16];
// } stateIn;
//
// layout(binding = 1, std430) buffer ResultBuffer {
//     uint success;
//     uint hashHi;
//     uint foundX;
//     uint reserved;
// } result;
//
// layout(push_constant) uniform PushConstants {
//     uint offset;
// } pc;
//
// uint rotr(uint x, uint shift) { return (x >> (shift & 31u)) | (x << (32u - (shift & 31u))); }
// uint rotl(uint x, uint shift) { return (x << (shift & 31u)) | (x >> (32u - (shift & 31u))); }
//
// uint mulDiff(uint base, uint main_, uint alt) {
//     if (main_ == 0u) { main_ = alt; }
//     uint64_t prod = uint64_t(base) * uint64_t(main_);
//     uint hi = uint(prod >> 32);
//     uint lo = uint(prod & 0xFFFFFFFFu);
//     uint diff = hi - lo;
//     return diff == 0u ? base : diff;
// }
//
// void main() {
//     uint stride = gl_NumWorkGroups.x * gl_WorkGroupSize.x;
//     uint t = gl_GlobalInvocationID.y * stride + gl_GlobalInvocationID.x;
//
//     uint s[16];
//     for (uint i = 0u; i < 16u; i++) { s[i] = stateIn.state[i]; }
//     uint cur1006 = 0u; // data[1005], zero under the patch protocol
//
//     for (uint i = 0u; i < BATCH_COUNT; i++) {
//         uint x = pc.offset + t * BATCH_COUNT + i;
//         if (x == 0u) { continue; }
//
//         uint local[16];
//         for (uint j = 0u; j < 16u; j++) { local[j] = s[j]; }
//
//         // round 1007 tail: cur = data[1006] (0), next = data[1007] = x
//         uint cur = 0u;
//         local[10] = mulDiff(local[10] + cur, x, 1007u);
//         local[11] = mulDiff(local[11] ^ cur, x, 1007u);
//         local[12] += cur;
//         local[13] += rotr(cur, cur & 31u) + rotr(x, x & 31u);
//
//         // round 1008 head only: cur = data[1007] = x, no tail (last round)
//         local[0] += mulDiff(1007u - 1008u, x, 1008u);
//         local[2] ^= x;
//         local[3] += mulDiff(x + 5u, MAGIC, 1008u);
//         local[4] += rotr(x, cur & 31u);
//         local[5] += rotl(x, cur >> 27u);
//         if (x < local[6]) {
//             local[6] = (local[3] + local[6]) ^ (x + 1008u);
//         } else {
//             local[6] = (local[4] + x) ^ local[6];
//         }
//         if (cur < x) {
//             local[9] = mulDiff(local[9], x, 1008u);
//         } else {
//             local[9] += x;
//         }
//
//         if (local[0] == 0u && local[1] == 0u) {
//             uint expected = 0u;
//             if (atomicCompSwap(result.success, expected, 1u) == 0u) {
//                 result.hashHi = local[0];
//                 result.foundX = x;
//             }
//         }
//     }
// }

// checksumKernelSPIRV holds only the five-word SPIR-V module header; it
// does not contain the compiled GLSL kernel above.
var checksumKernelSPIRV = []byte{
	// SPIR-V magic number
	0x03, 0x02, 0x23, 0x07,
	// Version 1.5 (Vulkan 1.2 client API)
	0x00, 0x05, 0x01, 0x00,
	// Generator magic
	0x00, 0x00, 0x00, 0x00,
	// Bound
	0x00, 0x00, 0x00, 0x00,
	// Schema
	0x00, 0x00, 0x00, 0x00,
	// Placeholder only: compile the GLSL reference source above with
	// glslc to produce the real module body.
}
