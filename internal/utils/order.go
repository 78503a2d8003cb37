package utils

import (
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/rand"
)

// NewOrderNo 生成兑换单号：前缀 + 时间 + 8位随机串
func NewOrderNo(prefix string, now time.Time) string {
	return prefix + now.Format("20060102150405") + strings.ToUpper(rand.String(8))
}
