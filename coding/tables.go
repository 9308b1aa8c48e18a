// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Tables from ISO/IEC 18004.

// Distance between alignment pattern centres, by version.
var alignDelta = [MaxVersion + 1]int{
	0, 11, 15, 19, 23, 27, // 0- 5
	31, 16, 18, 20, 22, // 6-10
	24, 26, 28, 20, 22, // 11-15
	24, 24, 26, 28, 28, // 16-20
	22, 24, 24, 26, 26, // 21-25
	28, 28, 24, 24, 26, // 26-30
	26, 26, 28, 28, 24, // 31-35
	26, 26, 26, 28, 28, // 36-40
}

// Block layout by version and level: number of short blocks, number
// of long blocks, data bytes in a short block and check bytes per block.
var blockTab = [MaxVersion + 1][H + 1]blocks{
	1: {{1, 0, 19, 7}, {1, 0, 16, 10}, {1, 0, 13, 13}, {1, 0, 9, 17}},
	2: {{1, 0, 34, 10}, {1, 0, 28, 16}, {1, 0, 22, 22}, {1, 0, 16, 28}},
	3: {{1, 0, 55, 15}, {1, 0, 44, 26}, {2, 0, 17, 18}, {2, 0, 13, 22}},
	4: {{1, 0, 80, 20}, {2, 0, 32, 18}, {2, 0, 24, 26}, {4, 0, 9, 16}},
	5: {{1, 0, 108, 26}, {2, 0, 43, 24}, {2, 2, 15, 18}, {2, 2, 11, 22}},
	6: {{2, 0, 68, 18}, {4, 0, 27, 16}, {4, 0, 19, 24}, {4, 0, 15, 28}},
	7: {{2, 0, 78, 20}, {4, 0, 31, 18}, {2, 4, 14, 18}, {4, 1, 13, 26}},
	8: {{2, 0, 97, 24}, {2, 2, 38, 22}, {4, 2, 18, 22}, {4, 2, 14, 26}},
	9: {{2, 0, 116, 30}, {3, 2, 36, 22}, {4, 4, 16, 20}, {4, 4, 12, 24}},
	10: {{2, 2, 68, 18}, {4, 1, 43, 26}, {6, 2, 19, 24}, {6, 2, 15, 28}},
	11: {{4, 0, 81, 20}, {1, 4, 50, 30}, {4, 4, 22, 28}, {3, 8, 12, 24}},
	12: {{2, 2, 92, 24}, {6, 2, 36, 22}, {4, 6, 20, 26}, {7, 4, 14, 28}},
	13: {{4, 0, 107, 26}, {8, 1, 37, 22}, {8, 4, 20, 24}, {12, 4, 11, 22}},
	14: {{3, 1, 115, 30}, {4, 5, 40, 24}, {11, 5, 16, 20}, {11, 5, 12, 24}},
	15: {{5, 1, 87, 22}, {5, 5, 41, 24}, {5, 7, 24, 30}, {11, 7, 12, 24}},
	16: {{5, 1, 98, 24}, {7, 3, 45, 28}, {15, 2, 19, 24}, {3, 13, 15, 30}},
	17: {{1, 5, 107, 28}, {10, 1, 46, 28}, {1, 15, 22, 28}, {2, 17, 14, 28}},
	18: {{5, 1, 120, 30}, {9, 4, 43, 26}, {17, 1, 22, 28}, {2, 19, 14, 28}},
	19: {{3, 4, 113, 28}, {3, 11, 44, 26}, {17, 4, 21, 26}, {9, 16, 13, 26}},
	20: {{3, 5, 107, 28}, {3, 13, 41, 26}, {15, 5, 24, 30}, {15, 10, 15, 28}},
	21: {{4, 4, 116, 28}, {17, 0, 42, 26}, {17, 6, 22, 28}, {19, 6, 16, 30}},
	22: {{2, 7, 111, 28}, {17, 0, 46, 28}, {7, 16, 24, 30}, {34, 0, 13, 24}},
	23: {{4, 5, 121, 30}, {4, 14, 47, 28}, {11, 14, 24, 30}, {16, 14, 15, 30}},
	24: {{6, 4, 117, 30}, {6, 14, 45, 28}, {11, 16, 24, 30}, {30, 2, 16, 30}},
	25: {{8, 4, 106, 26}, {8, 13, 47, 28}, {7, 22, 24, 30}, {22, 13, 15, 30}},
	26: {{10, 2, 114, 28}, {19, 4, 46, 28}, {28, 6, 22, 28}, {33, 4, 16, 30}},
	27: {{8, 4, 122, 30}, {22, 3, 45, 28}, {8, 26, 23, 30}, {12, 28, 15, 30}},
	28: {{3, 10, 117, 30}, {3, 23, 45, 28}, {4, 31, 24, 30}, {11, 31, 15, 30}},
	29: {{7, 7, 116, 30}, {21, 7, 45, 28}, {1, 37, 23, 30}, {19, 26, 15, 30}},
	30: {{5, 10, 115, 30}, {19, 10, 47, 28}, {15, 25, 24, 30}, {23, 25, 15, 30}},
	31: {{13, 3, 115, 30}, {2, 29, 46, 28}, {42, 1, 24, 30}, {23, 28, 15, 30}},
	32: {{17, 0, 115, 30}, {10, 23, 46, 28}, {10, 35, 24, 30}, {19, 35, 15, 30}},
	33: {{17, 1, 115, 30}, {14, 21, 46, 28}, {29, 19, 24, 30}, {11, 46, 15, 30}},
	34: {{13, 6, 115, 30}, {14, 23, 46, 28}, {44, 7, 24, 30}, {59, 1, 16, 30}},
	35: {{12, 7, 121, 30}, {12, 26, 47, 28}, {39, 14, 24, 30}, {22, 41, 15, 30}},
	36: {{6, 14, 121, 30}, {6, 34, 47, 28}, {46, 10, 24, 30}, {2, 64, 15, 30}},
	37: {{17, 4, 122, 30}, {29, 14, 46, 28}, {49, 10, 24, 30}, {24, 46, 15, 30}},
	38: {{4, 18, 122, 30}, {13, 32, 46, 28}, {48, 14, 24, 30}, {42, 32, 15, 30}},
	39: {{20, 4, 117, 30}, {40, 7, 47, 28}, {43, 22, 24, 30}, {10, 67, 15, 30}},
	40: {{19, 6, 118, 30}, {18, 31, 47, 28}, {34, 34, 24, 30}, {20, 61, 15, 30}},
}

// QR Code format bits, level << 3 | mask, masked with 0x5412.
var formatTab = [H + 1][8]uint16{
	L: {0x77c4, 0x72f3, 0x7daa, 0x789d, 0x662f, 0x6318, 0x6c41, 0x6976},
	M: {0x5412, 0x5125, 0x5e7c, 0x5b4b, 0x45f9, 0x40ce, 0x4f97, 0x4aa0},
	Q: {0x355f, 0x3068, 0x3f31, 0x3a06, 0x24b4, 0x2183, 0x2eda, 0x2bed},
	H: {0x1689, 0x13be, 0x1ce7, 0x19d0, 0x0762, 0x0255, 0x0d0c, 0x083b},
}

// BCH check bits of the version information, versions 7 to 40.
var versionTab = [MaxVersion - 6]uint16{
	0xc94, 0x5bc, 0xa99, 0x4d3, 0xbf6, 0x762, 0x847, 0x60d,
	0x928, 0xb78, 0x45d, 0xa17, 0x532, 0x9a6, 0x683, 0x8c9,
	0x7ec, 0xec4, 0x1e1, 0xfab, 0x08e, 0xc1a, 0x33f, 0xd75,
	0x250, 0x9d5, 0x6f0, 0x8ba, 0x79f, 0xb0b, 0x42e, 0xa64,
	0x541, 0xc69,
}

// Powers of the generator 2 in GF(256) modulo x⁸+x⁴+x³+x²+1.
// gfExp[255] is unused and zero.
var gfExp = [256]byte{
	0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1d, 0x3a, 0x74, 0xe8, 0xcd, 0x87, 0x13, 0x26,
	0x4c, 0x98, 0x2d, 0x5a, 0xb4, 0x75, 0xea, 0xc9, 0x8f, 0x03, 0x06, 0x0c, 0x18, 0x30, 0x60, 0xc0,
	0x9d, 0x27, 0x4e, 0x9c, 0x25, 0x4a, 0x94, 0x35, 0x6a, 0xd4, 0xb5, 0x77, 0xee, 0xc1, 0x9f, 0x23,
	0x46, 0x8c, 0x05, 0x0a, 0x14, 0x28, 0x50, 0xa0, 0x5d, 0xba, 0x69, 0xd2, 0xb9, 0x6f, 0xde, 0xa1,
	0x5f, 0xbe, 0x61, 0xc2, 0x99, 0x2f, 0x5e, 0xbc, 0x65, 0xca, 0x89, 0x0f, 0x1e, 0x3c, 0x78, 0xf0,
	0xfd, 0xe7, 0xd3, 0xbb, 0x6b, 0xd6, 0xb1, 0x7f, 0xfe, 0xe1, 0xdf, 0xa3, 0x5b, 0xb6, 0x71, 0xe2,
	0xd9, 0xaf, 0x43, 0x86, 0x11, 0x22, 0x44, 0x88, 0x0d, 0x1a, 0x34, 0x68, 0xd0, 0xbd, 0x67, 0xce,
	0x81, 0x1f, 0x3e, 0x7c, 0xf8, 0xed, 0xc7, 0x93, 0x3b, 0x76, 0xec, 0xc5, 0x97, 0x33, 0x66, 0xcc,
	0x85, 0x17, 0x2e, 0x5c, 0xb8, 0x6d, 0xda, 0xa9, 0x4f, 0x9e, 0x21, 0x42, 0x84, 0x15, 0x2a, 0x54,
	0xa8, 0x4d, 0x9a, 0x29, 0x52, 0xa4, 0x55, 0xaa, 0x49, 0x92, 0x39, 0x72, 0xe4, 0xd5, 0xb7, 0x73,
	0xe6, 0xd1, 0xbf, 0x63, 0xc6, 0x91, 0x3f, 0x7e, 0xfc, 0xe5, 0xd7, 0xb3, 0x7b, 0xf6, 0xf1, 0xff,
	0xe3, 0xdb, 0xab, 0x4b, 0x96, 0x31, 0x62, 0xc4, 0x95, 0x37, 0x6e, 0xdc, 0xa5, 0x57, 0xae, 0x41,
	0x82, 0x19, 0x32, 0x64, 0xc8, 0x8d, 0x07, 0x0e, 0x1c, 0x38, 0x70, 0xe0, 0xdd, 0xa7, 0x53, 0xa6,
	0x51, 0xa2, 0x59, 0xb2, 0x79, 0xf2, 0xf9, 0xef, 0xc3, 0x9b, 0x2b, 0x56, 0xac, 0x45, 0x8a, 0x09,
	0x12, 0x24, 0x48, 0x90, 0x3d, 0x7a, 0xf4, 0xf5, 0xf7, 0xf3, 0xfb, 0xeb, 0xcb, 0x8b, 0x0b, 0x16,
	0x2c, 0x58, 0xb0, 0x7d, 0xfa, 0xe9, 0xcf, 0x83, 0x1b, 0x36, 0x6c, 0xd8, 0xad, 0x47, 0x8e, 0x00,
}

// Discrete logarithms in GF(256).  gfLog[0] is LogOfZero.
var gfLog = [256]byte{
	0xff, 0x00, 0x01, 0x19, 0x02, 0x32, 0x1a, 0xc6, 0x03, 0xdf, 0x33, 0xee, 0x1b, 0x68, 0xc7, 0x4b,
	0x04, 0x64, 0xe0, 0x0e, 0x34, 0x8d, 0xef, 0x81, 0x1c, 0xc1, 0x69, 0xf8, 0xc8, 0x08, 0x4c, 0x71,
	0x05, 0x8a, 0x65, 0x2f, 0xe1, 0x24, 0x0f, 0x21, 0x35, 0x93, 0x8e, 0xda, 0xf0, 0x12, 0x82, 0x45,
	0x1d, 0xb5, 0xc2, 0x7d, 0x6a, 0x27, 0xf9, 0xb9, 0xc9, 0x9a, 0x09, 0x78, 0x4d, 0xe4, 0x72, 0xa6,
	0x06, 0xbf, 0x8b, 0x62, 0x66, 0xdd, 0x30, 0xfd, 0xe2, 0x98, 0x25, 0xb3, 0x10, 0x91, 0x22, 0x88,
	0x36, 0xd0, 0x94, 0xce, 0x8f, 0x96, 0xdb, 0xbd, 0xf1, 0xd2, 0x13, 0x5c, 0x83, 0x38, 0x46, 0x40,
	0x1e, 0x42, 0xb6, 0xa3, 0xc3, 0x48, 0x7e, 0x6e, 0x6b, 0x3a, 0x28, 0x54, 0xfa, 0x85, 0xba, 0x3d,
	0xca, 0x5e, 0x9b, 0x9f, 0x0a, 0x15, 0x79, 0x2b, 0x4e, 0xd4, 0xe5, 0xac, 0x73, 0xf3, 0xa7, 0x57,
	0x07, 0x70, 0xc0, 0xf7, 0x8c, 0x80, 0x63, 0x0d, 0x67, 0x4a, 0xde, 0xed, 0x31, 0xc5, 0xfe, 0x18,
	0xe3, 0xa5, 0x99, 0x77, 0x26, 0xb8, 0xb4, 0x7c, 0x11, 0x44, 0x92, 0xd9, 0x23, 0x20, 0x89, 0x2e,
	0x37, 0x3f, 0xd1, 0x5b, 0x95, 0xbc, 0xcf, 0xcd, 0x90, 0x87, 0x97, 0xb2, 0xdc, 0xfc, 0xbe, 0x61,
	0xf2, 0x56, 0xd3, 0xab, 0x14, 0x2a, 0x5d, 0x9e, 0x84, 0x3c, 0x39, 0x53, 0x47, 0x6d, 0x41, 0xa2,
	0x1f, 0x2d, 0x43, 0xd8, 0xb7, 0x7b, 0xa4, 0x76, 0xc4, 0x17, 0x49, 0xec, 0x7f, 0x0c, 0x6f, 0xf6,
	0x6c, 0xa1, 0x3b, 0x52, 0x29, 0x9d, 0x55, 0xaa, 0xfb, 0x60, 0x86, 0xb1, 0xbb, 0xcc, 0x3e, 0x5a,
	0xcb, 0x59, 0x5f, 0xb0, 0x9c, 0xa9, 0xa0, 0x51, 0x0b, 0xf5, 0x16, 0xeb, 0x7a, 0x75, 0x2c, 0xd7,
	0x4f, 0xae, 0xd5, 0xe9, 0xe6, 0xe7, 0xad, 0xe8, 0x74, 0xd6, 0xf4, 0xea, 0xa8, 0x50, 0x58, 0xaf,
}
