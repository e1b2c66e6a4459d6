package conf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadShippedConfig(t *testing.T) {
	bc, err := Load("../../configs/config.yaml")
	require.NoError(t, err)

	require.NotNil(t, bc.Data)
	require.NotNil(t, bc.Data.Database)
	assert.Contains(t, bc.Data.Database.Source, "dbname=streamvision")

	require.NotNil(t, bc.Data.Redis)
	assert.Equal(t, "localhost:6379", bc.Data.Redis.Addr)
	assert.Equal(t, 200*time.Millisecond, bc.Data.Redis.ReadTimeout.AsDuration())
	assert.Equal(t, 200*time.Millisecond, bc.Data.Redis.WriteTimeout.AsDuration())

	require.NotNil(t, bc.Export)
	assert.Equal(t, "streamvision-data-lake", bc.Export.Bucket)
	assert.Equal(t, "raw/postgres", bc.Export.Prefix)

	require.NotNil(t, bc.Generate)
	assert.Equal(t, 10000, bc.Generate.Users)
	assert.Equal(t, 100000, bc.Generate.ViewingSessions)
}

func TestDurationDecoding(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"200ms"`), &d))
	assert.Equal(t, 200*time.Millisecond, d.AsDuration())

	require.NoError(t, json.Unmarshal([]byte(`"1h30m"`), &d))
	assert.Equal(t, 90*time.Minute, d.AsDuration())

	require.NoError(t, json.Unmarshal([]byte(`1500000000`), &d))
	assert.Equal(t, 1500*time.Millisecond, d.AsDuration())

	assert.Error(t, json.Unmarshal([]byte(`"not a duration"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}
