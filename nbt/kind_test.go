package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindNames(t *testing.T) {
	require.Equal(t, "TAG_Int", KindInt.String())
	require.Equal(t, "TAG_Byte_Array", KindByteArray.String())
	require.Equal(t, "TAG_Long_Array", KindLongArray.String())
	require.Equal(t, "Compound", KindCompound.Name())
	require.Equal(t, "TAG_Unknown_13", Kind(13).String())
	require.False(t, Kind(13).Valid())
	require.True(t, KindEnd.Valid())
}

func TestKindWidth(t *testing.T) {
	require.Equal(t, 1, KindByte.Width())
	require.Equal(t, 2, KindShort.Width())
	require.Equal(t, 4, KindFloat.Width())
	require.Equal(t, 8, KindLongArray.Width())
	require.Equal(t, 0, KindString.Width())
	require.Equal(t, 0, KindCompound.Width())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"Int", KindInt},
		{"int", KindInt},
		{"TAG_Int", KindInt},
		{"int_array", KindIntArray},
		{"IntArray", KindIntArray},
		{"TAG_Byte_Array", KindByteArray},
		{"long-array", KindLongArray},
		{" compound ", KindCompound},
		{"end", KindEnd},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKind("widget")
	require.Error(t, err)
}
