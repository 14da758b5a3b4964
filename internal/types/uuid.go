package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex txn_01HZX4Q3M2V8...
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short human readable number with a prefix.
// Total length is capped at 12 characters, e.g. `INV-XYZ12A8Q`.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(prefix + id)
}

const (
	UUID_PREFIX_TENANT      = "tenant"
	UUID_PREFIX_COMPANY     = "comp"
	UUID_PREFIX_KPI         = "kpi"
	UUID_PREFIX_TRANSACTION = "txn"
	UUID_PREFIX_INVOICE     = "inv"
	UUID_PREFIX_CONTACT     = "cont"
	UUID_PREFIX_LEAD        = "lead"
	UUID_PREFIX_DEAL        = "deal"
	UUID_PREFIX_TASK        = "task"
	UUID_PREFIX_EVENT       = "event"
)

const (
	SHORT_ID_PREFIX_INVOICE = "INV-"
)
