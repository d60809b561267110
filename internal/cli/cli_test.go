package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/workdist"
	"github.com/gogpu/workdist/internal/preview"
)

func testCommand(stderr *bytes.Buffer) (*Command, *Options) {
	c := NewCommand("test", []Param{
		{Name: "a", Desc: "the a constant", Range: FloatRange(-1, 1)},
		{Name: "size", Desc: "the image size", Range: IntRange(1, 2048)},
		{Name: "model", Desc: "the model", Range: IntRange(1, 6), Choices: []string{"1: Row Stride", "2: Block Stride"}},
	}, stderr)
	var o Options
	o.Register(c.Flags)
	return c, &o
}

// =============================================================================
// Value Parsing
// =============================================================================

func TestParseFloat(t *testing.T) {
	v, err := ParseFloat("-0.25", "a", -1, 1)
	require.NoError(t, err)
	assert.Equal(t, -0.25, v)

	_, err = ParseFloat("2.0", "a", -1, 1)
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, ExitInvalid, ue.Code)
	assert.Equal(t, "Value, 2.000000, given for a is not in the range [-1.000000, 1.000000]", ue.Msg)

	_, err = ParseFloat("abc", "b", -1, 1)
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Value, abc, given for b is not a number", ue.Msg)

	_, err = ParseFloat("NaN", "b", -1, 1)
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Msg, "is not a number")
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr string
	}{
		{"1", 1, ""},
		{"32", 32, ""},
		{"0", 0, "Value, 0, given for threads is not in the range [1, 32]"},
		{"33", 0, "Value, 33, given for threads is not in the range [1, 32]"},
		{"4.5", 0, "Value, 4.5, given for threads is not a number"},
		{"", 0, "Value, , given for threads is not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInt(tt.in, "threads", 1, 32)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

// =============================================================================
// Positional Arguments and Flags
// =============================================================================

func TestCommand_ParseInterspersedFlags(t *testing.T) {
	var stderr bytes.Buffer
	c, o := testCommand(&stderr)

	pos, err := c.Parse([]string{"-v", "-0.4", "-stats", "256", "3", "-json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-0.4", "256", "3"}, pos)
	assert.True(t, o.Verbose)
	assert.True(t, o.Stats)
	assert.True(t, o.JSON)
	assert.False(t, o.Preview)
}

func TestCommand_ParseDoubleDash(t *testing.T) {
	var stderr bytes.Buffer
	c, o := testCommand(&stderr)

	pos, err := c.Parse([]string{"-pin", "--", "x", "-v", "3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "-v", "3"}, pos)
	assert.True(t, o.Pin)
	assert.False(t, o.Verbose)
}

func TestCommand_ParseValueFlag(t *testing.T) {
	var stderr bytes.Buffer
	c, _ := testCommand(&stderr)
	model := c.Flags.String("model", "1", "model")

	pos, err := c.Parse([]string{"0.5", "-model", "next-free-row", "16", "-model=4", "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0.5", "16", "2"}, pos)
	assert.Equal(t, "4", *model)
}

func TestCommand_WrongArgCount(t *testing.T) {
	var stderr bytes.Buffer
	c, _ := testCommand(&stderr)

	_, err := c.Parse([]string{"0.1", "16"})
	require.Error(t, err)

	assert.Equal(t, ExitArgCount, c.Fail(err))
	out := stderr.String()
	assert.Contains(t, out, "Must have 3 command line arguments.")
	assert.Contains(t, out, "\ta: the a constant [-1.000000, 1.000000]")
	assert.Contains(t, out, "\t\t2: Block Stride")
	assert.Contains(t, out, "-verify")
}

func TestCommand_UnknownFlag(t *testing.T) {
	var stderr bytes.Buffer
	c, _ := testCommand(&stderr)

	_, err := c.Parse([]string{"-nope", "1", "2", "3"})
	require.Error(t, err)
	assert.Equal(t, ExitInvalid, c.Fail(err))
	assert.Contains(t, stderr.String(), "flag provided but not defined: -nope")
}

func TestCommand_Help(t *testing.T) {
	var stderr bytes.Buffer
	c, _ := testCommand(&stderr)

	_, err := c.Parse([]string{"-h"})
	require.ErrorIs(t, err, flag.ErrHelp)
	assert.Equal(t, ExitOK, c.Fail(err))
	assert.Contains(t, stderr.String(), "The program arguments are:")
}

func TestCommand_FailInvalidValue(t *testing.T) {
	var stderr bytes.Buffer
	c, _ := testCommand(&stderr)

	_, err := ParseInt("9", "model", 1, 6)
	assert.Equal(t, ExitInvalid, c.Fail(err))
	assert.Contains(t, stderr.String(), "Value, 9, given for model is not in the range [1, 6]")
}

// =============================================================================
// Options
// =============================================================================

func TestOptions_SchedulerOptions(t *testing.T) {
	o := Options{Verify: true, Pin: true}
	s := workdist.NewScheduler(o.SchedulerOptions(o.Logger(&bytes.Buffer{}))...)

	buf, err := workdist.NewImageBuffer(8)
	require.NoError(t, err)
	_, err = s.RunPass(context.Background(), buf, workdist.NewPerlin(8), 4, workdist.NextFreeBlock)
	require.NoError(t, err)
}

func TestOptions_VerboseLogger(t *testing.T) {
	var out bytes.Buffer
	o := Options{Verbose: true}
	o.Logger(&out).Debug("hello")
	assert.Contains(t, out.String(), "msg=hello")

	out.Reset()
	(&Options{}).Logger(&out).Error("quiet")
	assert.Empty(t, out.String())
}

func TestOptions_AgentDisabled(t *testing.T) {
	stop := (&Options{}).StartAgent(workdist.Logger())
	require.NotNil(t, stop)
	stop()
}

// =============================================================================
// Execute
// =============================================================================

type recordDisplay struct {
	shown []image.Image
	err   error
}

func (d *recordDisplay) Show(img image.Image) error {
	d.shown = append(d.shown, img)
	return d.err
}

func TestExecute_Success(t *testing.T) {
	var stdout, stderr bytes.Buffer
	disp := &recordDisplay{}
	env := Env{Stdout: &stdout, Stderr: &stderr, Display: disp}
	job := workdist.Job{Size: 16, Images: 2, Workers: 4, Model: workdist.PixelStride, Kernel: workdist.NewPerlin(16)}

	code := Execute(context.Background(), env, "perlin", job, &Options{Stats: true})
	assert.Equal(t, ExitOK, code)
	assert.Regexp(t, `^Drawing took \d+\.\d{6} seconds\n`, stdout.String())
	assert.Contains(t, stdout.String(), "image 2:")
	require.Len(t, disp.shown, 1)
	assert.Equal(t, image.Rect(0, 0, 16, 16), disp.shown[0].Bounds())
}

func TestExecute_JSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := Env{Stdout: &stdout, Stderr: &stderr}
	job := workdist.Job{Size: 4, Images: 1, Workers: 1, Model: workdist.RowStride, Kernel: workdist.NewJulia(0, 0, 4)}

	code := Execute(context.Background(), env, "julia", job, &Options{JSON: true})
	assert.Equal(t, ExitOK, code)
	assert.NotContains(t, stdout.String(), "Drawing took")
	assert.Contains(t, stdout.String(), `"command": "julia"`)
}

func TestExecute_DisplayFailureIsLogged(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := Env{Stdout: &stdout, Stderr: &stderr, Display: &recordDisplay{err: errors.New("no screen")}}
	job := workdist.Job{Size: 2, Images: 1, Workers: 2, Model: workdist.RowStride, Kernel: workdist.NewPerlin(2)}

	code := Execute(context.Background(), env, "perlin", job, &Options{Verbose: true})
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stderr.String(), "image not displayed")
}

func TestExecute_PreviewFollowsInjectedStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := Env{Stdout: &stdout, Stderr: &stderr}
	job := workdist.Job{Size: 4, Images: 1, Workers: 2, Model: workdist.RowStride, Kernel: workdist.NewPerlin(4)}

	code := Execute(context.Background(), env, "perlin", job, &Options{Preview: true, Verbose: true})
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stderr.String(), "image not displayed")
	assert.Contains(t, stderr.String(), preview.ErrNotTerminal.Error())
	assert.NotContains(t, stdout.String(), "\x1b[")
}

func TestTerminalFd(t *testing.T) {
	assert.Equal(t, -1, terminalFd(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "stdout")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, int(f.Fd()), terminalFd(f))
}

func TestExecute_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	disp := &recordDisplay{}
	env := Env{Stdout: &stdout, Stderr: &stderr, Display: disp}
	job := workdist.Job{Size: 8, Images: 3, Workers: 4, Model: workdist.NextFreeRow, Kernel: workdist.NewPerlin(8)}

	code := Execute(ctx, env, "perlin", job, &Options{})
	assert.Equal(t, ExitInterrupted, code)
	assert.Contains(t, stderr.String(), "Execution was Interrupted!")
	assert.Empty(t, disp.shown)
}

func TestExecute_RenderFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := Env{Stdout: &stdout, Stderr: &stderr}
	job := workdist.Job{Size: 8, Images: 1, Workers: 2, Model: workdist.RowStride, Kernel: workdist.NewPerlin(4)}

	code := Execute(context.Background(), env, "perlin", job, &Options{})
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr.String(), "size mismatch")
	assert.Empty(t, stdout.String())
}

func TestModelChoices(t *testing.T) {
	assert.Equal(t, []string{
		"1: Row Stride",
		"2: Block Stride",
		"3: Pixel Stride",
		"4: Next Free Row",
		"5: Next Free Pixel",
		"6: Next Free Block",
	}, ModelChoices())
}

func TestParseModel(t *testing.T) {
	m, err := ParseModel("next-free-block", "model")
	require.NoError(t, err)
	assert.Equal(t, workdist.NextFreeBlock, m)

	m, err = ParseModel("3", "model")
	require.NoError(t, err)
	assert.Equal(t, workdist.PixelStride, m)

	_, err = ParseModel("7", "model")
	assert.EqualError(t, err, "Value, 7, given for model is not a distribution model")
}
