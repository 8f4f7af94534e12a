// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package goavro

// MaxBlockCount bounds the number of items a single decoded block may
// claim to hold, guarding against corrupt or hostile input claiming an
// implausibly large allocation.
const MaxBlockCount = 1 << 24

// MaxBlockSize bounds the byte size a single decoded block may claim,
// for the same reason.
const MaxBlockSize = 1 << 28

// appendBlockHeader appends a block header for count items to buf. If
// includeByteSize is true (EncodeOption WithBlockByteSize), the count
// is negated and followed by the block's encoded byte size, allowing
// a decoder to skip the block without interpreting its contents.
func appendBlockHeader(buf []byte, count int, blockBytes []byte, includeByteSize bool) []byte {
	if includeByteSize {
		buf = longBinaryFromNativeValue(buf, -int64(count))
		buf = longBinaryFromNativeValue(buf, int64(len(blockBytes)))
	} else {
		buf = longBinaryFromNativeValue(buf, int64(count))
	}
	return append(buf, blockBytes...)
}

// readBlockCount reads one block-count long, resolving the
// skippable-block-byte-size convention: a negative count is followed
// by a byte-size long that must also be consumed (and is returned so
// callers can skip it without decoding item-by-item).
func readBlockCount(buf []byte) (count int64, blockByteSize int64, hasByteSize bool, remainder []byte, err error) {
	count, remainder, err = longNativeFromBinaryValue(buf)
	if err != nil {
		return 0, 0, false, nil, err
	}
	if count < 0 {
		count = -count
		blockByteSize, remainder, err = longNativeFromBinaryValue(remainder)
		if err != nil {
			return 0, 0, false, nil, err
		}
		hasByteSize = true
	}
	if blockByteSize > MaxBlockSize {
		return 0, 0, false, nil, &CodecError{Kind: EncodingTypeMismatch, Message: "block byte size exceeds maximum"}
	}
	if count > MaxBlockCount {
		return 0, 0, false, nil, &CodecError{Kind: EncodingTypeMismatch, Message: "block count exceeds maximum"}
	}
	return count, blockByteSize, hasByteSize, remainder, nil
}
