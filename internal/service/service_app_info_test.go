package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
)

func TestAppInfoService_Version(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
		wantErr error
	}{
		{name: "plain", version: "1.4.0", want: "1.4.0"},
		{name: "tag prefix", version: "v2.0.1", want: "2.0.1"},
		{name: "padded", version: "  dev \n", want: "dev"},
		{name: "empty", version: "", wantErr: ErrVersionIsNotSet},
		{name: "blank", version: "   ", wantErr: ErrVersionIsNotSet},
		{name: "only prefix", version: "v", wantErr: ErrVersionIsNotSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.version})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, svc.GetAppVersion(context.Background()))
		})
	}
}
