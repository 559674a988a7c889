package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/iley/fang/internal/codegen"
	"github.com/iley/fang/internal/document"
)

// CompilationConfig holds the toolchain used to turn generated assembly into
// an executable.
type CompilationConfig struct {
	Compiler      string
	CompilerFlags []string
}

// getCompilationConfig returns the toolchain configuration. FANG_CC overrides
// the C compiler driver.
func getCompilationConfig() (*CompilationConfig, error) {
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		return nil, fmt.Errorf("unsupported platform: %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	compiler := os.Getenv("FANG_CC")
	if compiler == "" {
		compiler = "gcc"
	}
	return &CompilationConfig{
		Compiler:      compiler,
		CompilerFlags: []string{"-no-pie"},
	}, nil
}

// TestCase represents a single test case
type TestCase struct {
	Name         string
	ProgramFile  string
	ExpectedFile string
	// InputFile is fed to the program's standard input. Empty if the test has none.
	InputFile string
}

// discoverTests finds all test cases in the tests directory
func discoverTests(testsDir string) ([]TestCase, error) {
	var tests []TestCase

	err := filepath.WalkDir(testsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			baseName := strings.TrimSuffix(filepath.Base(path), ".json")
			dir := filepath.Dir(path)
			expectedFile := filepath.Join(dir, baseName+".out")

			if _, err := os.Stat(expectedFile); err == nil {
				testCase := TestCase{
					Name:         baseName,
					ProgramFile:  path,
					ExpectedFile: expectedFile,
				}
				inputFile := filepath.Join(dir, baseName+".in")
				if _, err := os.Stat(inputFile); err == nil {
					testCase.InputFile = inputFile
				}
				tests = append(tests, testCase)
			}
		}

		return nil
	})

	return tests, err
}

// compileTest generates assembly for a test program and builds an executable from it
func compileTest(config *CompilationConfig, testCase TestCase, workDir string) (string, []string, error) {
	asmFile := filepath.Join(workDir, testCase.Name+".s")
	binFile := filepath.Join(workDir, testCase.Name)

	generatedFiles := []string{asmFile, binFile}

	doc, err := document.LoadFile(testCase.ProgramFile)
	if err != nil {
		return "", generatedFiles, err
	}
	if err := codegen.GenerateFile(asmFile, codegen.TargetX86_64Linux, doc.Program, doc.Symbols); err != nil {
		return "", generatedFiles, err
	}

	args := append(append([]string{}, config.CompilerFlags...), "-o", binFile, asmFile)
	ccCmd := exec.Command(config.Compiler, args...)
	if output, err := ccCmd.CombinedOutput(); err != nil {
		return "", generatedFiles, fmt.Errorf("%s failed: %w\nOutput: %s", config.Compiler, err, string(output))
	}

	return binFile, generatedFiles, nil
}

// runTest executes a test binary and returns its output
func runTest(binaryPath, inputFile string) (string, error) {
	cmd := exec.Command(binaryPath)
	if inputFile != "" {
		input, err := os.Open(inputFile)
		if err != nil {
			return "", err
		}
		defer input.Close()
		cmd.Stdin = input
	}

	output, err := cmd.Output()
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				if status.Signaled() {
					return string(output), fmt.Errorf("killed by %s", status.Signal())
				}
				return string(output), fmt.Errorf("exit status %d", status.ExitStatus())
			}
		}
		return "", err
	}
	return string(output), nil
}

// cleanupFiles removes the specified files, ignoring any errors
func cleanupFiles(files []string) {
	for _, file := range files {
		os.Remove(file)
	}
}

// testResult is the outcome of one test case.
type testResult struct {
	passed   bool
	errorMsg string
}

// runSingleTest runs a single test case and reports pass/fail status
func runSingleTest(config *CompilationConfig, testCase TestCase, workDir string) testResult {
	binaryPath, generatedFiles, err := compileTest(config, testCase, workDir)
	if err != nil {
		return testResult{errorMsg: fmt.Sprintf("compilation error: %v", err)}
	}

	actualOutput, err := runTest(binaryPath, testCase.InputFile)
	if err != nil {
		return testResult{errorMsg: fmt.Sprintf("runtime error: %v", err)}
	}

	expected, err := os.ReadFile(testCase.ExpectedFile)
	if err != nil {
		return testResult{errorMsg: fmt.Sprintf("error reading expected output: %v", err)}
	}
	expectedOutput := string(expected)

	if actualOutput == expectedOutput {
		cleanupFiles(generatedFiles)
		return testResult{passed: true}
	}

	// Test failed - leave files for inspection
	return testResult{errorMsg: fmt.Sprintf("output mismatch:\nExpected: %q\nActual:   %q", expectedOutput, actualOutput)}
}

// findTestCase finds a test case by number or path
func findTestCase(tests []TestCase, identifier string) (*TestCase, error) {
	if strings.Contains(identifier, "/") || strings.HasSuffix(identifier, ".json") {
		identifier = strings.TrimSuffix(filepath.Base(identifier), ".json")
		for _, test := range tests {
			if test.Name == identifier {
				return &test, nil
			}
		}
		return nil, fmt.Errorf("test not found: %s", identifier)
	}

	// If identifier is just a number, find test that starts with that number
	for _, test := range tests {
		if strings.HasPrefix(test.Name, identifier+"_") || test.Name == identifier {
			return &test, nil
		}
	}

	return nil, fmt.Errorf("test not found: %s", identifier)
}

func main() {
	testsDir := flag.String("dir", "tests", "directory containing test programs")
	jobs := flag.Int("j", runtime.NumCPU(), "number of tests to run in parallel")
	flag.Parse()

	config, err := getCompilationConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tests, err := discoverTests(*testsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error discovering tests: %v\n", err)
		os.Exit(1)
	}

	if len(tests) == 0 {
		fmt.Printf("No tests found in %s directory\n", *testsDir)
		return
	}

	sort.Slice(tests, func(i, j int) bool {
		return tests[i].Name < tests[j].Name
	})

	var testsToRun []TestCase
	if flag.NArg() > 0 {
		testCase, err := findTestCase(tests, flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		testsToRun = []TestCase{*testCase}
		fmt.Printf("Running specific test: %s\n", testCase.Name)
	} else {
		testsToRun = tests
		if len(tests) == 1 {
			fmt.Printf("Found 1 test\n")
		} else {
			fmt.Printf("Found %d tests\n", len(tests))
		}
	}

	workDir, err := os.MkdirTemp("", "fang-tests-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	results := make([]testResult, len(testsToRun))
	var g errgroup.Group
	g.SetLimit(max(*jobs, 1))
	for i, test := range testsToRun {
		i, test := i, test
		g.Go(func() error {
			results[i] = runSingleTest(config, test, workDir)
			return nil
		})
	}
	g.Wait()

	passed := 0
	failed := 0
	for i, test := range testsToRun {
		if results[i].passed {
			fmt.Printf("Running test %s... PASS\n", test.Name)
			passed++
		} else {
			fmt.Printf("Running test %s... FAIL - %s\n", test.Name, results[i].errorMsg)
			failed++
		}
	}

	if failed == 0 {
		os.RemoveAll(workDir)
		fmt.Printf("Test Results: %d passed. All good!\n", passed)
	} else {
		fmt.Printf("Test Results: %d passed, %d failed. Build files kept in %s\n", passed, failed, workDir)
		os.Exit(1)
	}
}
