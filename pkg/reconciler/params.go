package reconciler

import (
	"strconv"
	"strings"

	"github.com/bacalhau-project/lambdapushdown/pkg/models"
)

// EncodeParams renders lambdas in the filter's params format,
// "0-lambda=<b0>,1-lambda=<b1>,...", keeping their order.
func EncodeParams(lambdas []models.LambdaCandidate) string {
	var sb strings.Builder
	for i, lambda := range lambdas {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("-lambda=")
		sb.WriteString(lambda.TypeAndBody)
	}
	return sb.String()
}
