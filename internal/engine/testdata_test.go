package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const riceHeader = "Country,Rice Production (Tons),Rank of Rice Production,Rice Production Per Person (Kg),Rank of Rice Production Per Person,Rice Acreage (Hectare),Rank of Rice Acreage,Rice Yield (Kg / Hectare),Rank of Rice Yield\n"

const riceCSV = riceHeader +
	`China,212.8M,1,152.1,9,30.2M,2,"7,040.6",13
India,172.6M,2,128.8,17,43.7M,1,"3,949.1",46
Bangladesh,54.9M,3,337.7,2,11.7M,3,"4,688.1",30
Vietnam,43.4M,5,459.4,1,7.7M,5,"5,615.4",19
Belize,19.4K,93,49.8,60,,98,"3,000.7",61
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rice.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
