package invoice

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
)

// numberDigits is how many trailing digits of the snowflake code end up in a number.
const numberDigits = 6

// NumberGenerator allocates display numbers of the form <prefix><year>-<digits>.
// Uniqueness per organization is enforced by the store; callers retry on ErrDuplicateNumber.
type NumberGenerator struct {
	prefix string
	node   *snowflake.Node
}

func NewNumberGenerator(prefix string, nodeID int64) (*NumberGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("creating snowflake node: %w", err)
	}

	return &NumberGenerator{prefix: prefix, node: node}, nil
}

// Next returns a new number for an invoice issued in the year of issueDate.
func (g *NumberGenerator) Next(issueDate time.Time) string {
	code := strconv.FormatInt(g.node.Generate().Int64(), 10)
	if len(code) > numberDigits {
		code = code[len(code)-numberDigits:]
	}

	return fmt.Sprintf("%s%d-%s", g.prefix, issueDate.Year(), code)
}
