package objectid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"

	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// ID 24位十六进制文档ID（12字节：4字节时间戳 + 5字节随机数 + 3字节自增计数）
// 设计说明：
// 1. 所有实体主键统一使用该格式，与文档数据库的主键约定保持一致
// 2. 入口处必须先Parse再查库：格式非法直接返回参数错误，而不是笼统的"不存在"
// 3. ID在应用侧生成，插入前即可拿到主键，方便跨文档引用（分类children、购物车books等）
type ID string

const rawLen = 12

var (
	// 进程级随机前缀+自增计数，同一秒内生成的ID依然唯一
	processRand [5]byte
	counter     uint32
)

func init() {
	if _, err := rand.Read(processRand[:]); err != nil {
		panic("objectid: 读取随机源失败: " + err.Error())
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic("objectid: 读取随机源失败: " + err.Error())
	}
	counter = binary.BigEndian.Uint32(seed[:])
}

// New 生成新ID
func New() ID {
	var b [rawLen]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(time.Now().Unix()))
	copy(b[4:9], processRand[:])

	c := atomic.AddUint32(&counter, 1)
	b[9] = byte(c >> 16)
	b[10] = byte(c >> 8)
	b[11] = byte(c)

	return ID(hex.EncodeToString(b[:]))
}

// Parse 校验并解析ID
// 非24位小写/大写十六进制一律拒绝（fail closed），返回参数错误而非NotFound
func Parse(s string) (ID, error) {
	if len(s) != rawLen*2 {
		return "", apperrors.ErrInvalidID
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", apperrors.ErrInvalidID
	}
	return ID(s), nil
}

// IsValid 仅校验格式
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func (id ID) String() string {
	return string(id)
}

// Timestamp 提取ID中的创建时间（秒级）
func (id ID) Timestamp() time.Time {
	b, err := hex.DecodeString(string(id))
	if err != nil || len(b) != rawLen {
		return time.Time{}
	}
	return time.Unix(int64(binary.BigEndian.Uint32(b[0:4])), 0)
}
