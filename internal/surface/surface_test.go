package surface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCodec_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		i := rapid.IntRange(0, MaxRegions-1).Draw(rt, "index")
		got, ok := Decode(Encode(i))
		require.True(rt, ok)
		require.Equal(rt, i, got)
	})
}

func TestCodec_RejectsUnguardedPixels(t *testing.T) {
	_, ok := Decode(Void)
	require.False(t, ok)
	_, ok = Decode(color.RGBA{R: 3, B: 0x80, A: 0xff})
	require.False(t, ok, "blended edge pixel")
}

func TestSurface_FillAndSample(t *testing.T) {
	s := New(6, 2)
	s.Fill(image.Rect(1, 0, 4, 1), Encode(7))
	s.Fill(image.Rect(5, 1, 20, 20), Encode(2))

	i, ok := Decode(s.At(2, 0))
	require.True(t, ok)
	require.Equal(t, 7, i)

	_, ok = Decode(s.At(0, 0))
	require.False(t, ok)

	i, ok = Decode(s.At(5, 1))
	require.True(t, ok)
	require.Equal(t, 2, i)

	require.Equal(t, Void, s.At(-1, 0))
	require.Equal(t, Void, s.At(6, 0))
}

func TestSurface_ResetClears(t *testing.T) {
	s := New(4, 4)
	s.Fill(image.Rect(0, 0, 4, 4), Encode(1))
	s.Reset(2, 3)
	w, h := s.Size()
	require.Equal(t, 2, w)
	require.Equal(t, 3, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			require.Equal(t, Void, s.At(x, y))
		}
	}
}

func TestSurface_Dump(t *testing.T) {
	s := New(3, 1)
	s.Fill(image.Rect(1, 0, 2, 1), Encode(9))

	enc, err := EncoderFor("map.png")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf, enc, 4))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 12, 4), img.Bounds())
	r, _, b, _ := img.At(5, 2).RGBA()
	require.Equal(t, uint32(9), r>>8)
	require.Equal(t, uint32(Guard), b>>8)

	for _, name := range []string{"a.bmp", "a.TIFF"} {
		_, err := EncoderFor(name)
		require.NoError(t, err, name)
	}
	_, err = EncoderFor("a.gif")
	require.Error(t, err)
}

func TestPool_RefCounting(t *testing.T) {
	p := NewPool()
	require.False(t, p.Allocated())

	a := p.Acquire("a")
	b := p.Acquire("b")
	require.Same(t, a, b)
	require.Equal(t, 2, p.Holders())
	require.Equal(t, 1, p.Allocations())

	p.Acquire("a")
	require.Equal(t, 2, p.Holders())

	p.Release("a")
	require.True(t, p.Allocated())
	p.Release("unknown")
	require.True(t, p.Allocated())

	p.Release("b")
	require.False(t, p.Allocated())
	require.Zero(t, p.Holders())

	p.Acquire("c")
	require.Equal(t, 2, p.Allocations())
}
