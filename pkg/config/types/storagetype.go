package types

import (
	"fmt"
	"strings"
)

// StorageType selects where the built jar is published.
type StorageType int

const (
	UnknownStorage StorageType = iota
	HDFS
	S3
)

func (s StorageType) String() string {
	switch s {
	case HDFS:
		return "hdfs"
	case S3:
		return "s3"
	case UnknownStorage:
		return "unknown"
	default:
		return fmt.Sprintf("StorageType(%d)", int(s))
	}
}

func (s StorageType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *StorageType) UnmarshalText(text []byte) error {
	out, err := ParseStorageType(string(text))
	if err != nil {
		return err
	}
	*s = out
	return nil
}

func ParseStorageType(s string) (StorageType, error) {
	for _, typ := range []StorageType{HDFS, S3} {
		if strings.EqualFold(strings.TrimSpace(s), typ.String()) {
			return typ, nil
		}
	}
	return UnknownStorage, fmt.Errorf("%q is an invalid storage type (valid types: hdfs, s3)", s)
}
