// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package handler_test

import (
	"testing"

	"github.com/aibor/partyrun/internal/files"
	"github.com/aibor/partyrun/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		record      string
		expected    *handler.Handler
		expectedErr error
	}{
		{
			name:     "empty",
			record:   `{}`,
			expected: &handler.Handler{},
		},
		{
			name: "full with comments",
			record: `{
				// shown in the title list
				"fancyname": "Alice Adventures",
				"steam_appdir": "Alice",
				"steam_appid": "12345",
				"exec": "bin/game.exe",
				"runtime": "proton",
				"path_goldberg": "bin",
				"args": ["-windowed", "-name", "$PROFILENAME"],
				"game_unique_paths": ["saves"],
				"copy_paths": ["save.dat"],
				"remove_paths": ["readme.txt"],
				"is_32bit": true,
				"win_unique_appdata": true,
				"win_unique_documents": false,
				"linux_unique_localshare": false, /* trailing comma */
			}`,
			expected: &handler.Handler{
				DisplayName:      "Alice Adventures",
				SteamAppDir:      "Alice",
				SteamAppID:       "12345",
				Exec:             "bin/game.exe",
				Runtime:          handler.RuntimeCompat,
				ShimPath:         "bin",
				Args:             []string{"-windowed", "-name", "$PROFILENAME"},
				UniquePaths:      []string{"saves"},
				CopyPaths:        []string{"save.dat"},
				RemovePaths:      []string{"readme.txt"},
				Is32Bit:          true,
				WinUniqueAppData: true,
			},
		},
		{
			name:     "spec runtime name",
			record:   `{"runtime": "raw-compatibility-binary"}`,
			expected: &handler.Handler{Runtime: handler.RuntimeRawCompat},
		},
		{
			name:        "wrong type",
			record:      `{"is_32bit": "yes"}`,
			expectedErr: handler.ErrSchema,
		},
		{
			name:        "wrong list item type",
			record:      `{"copy_paths": [1, 2]}`,
			expectedErr: handler.ErrSchema,
		},
		{
			name:        "unknown runtime",
			record:      `{"runtime": "dosbox"}`,
			expectedErr: handler.ErrSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := handler.Parse([]byte(tt.record))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	files.MustWriteFiles(t, dir, map[string]string{
		"Alice/info.json":   `{"exec": "game.exe", "runtime": "wine"}`,
		"Broken/info.json":  `{"exec": `,
		"Bob/info.json":     `{"exec": "bob", "fancyname": "Bob's Game"}`,
		"NoRecord/data.txt": "nothing here",
		"stray.json":        `{}`,
	})

	handlers, err := handler.Scan(dir)
	require.NoError(t, err)
	require.Len(t, handlers, 2)

	assert.Equal(t, "Alice", handlers[0].ID)
	assert.Equal(t, "Alice", handlers[0].Name())
	assert.Equal(t, handler.RuntimeRawCompat, handlers[0].Runtime)
	assert.Equal(t, dir+"/Alice", handlers[0].Dir)

	assert.Equal(t, "Bob", handlers[1].ID)
	assert.Equal(t, "Bob's Game", handlers[1].Name())
	assert.False(t, handlers[1].Validated())
}

func TestScanMissingDir(t *testing.T) {
	_, err := handler.Scan(t.TempDir() + "/missing")
	assert.Error(t, err)
}
