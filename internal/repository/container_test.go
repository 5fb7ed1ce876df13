package repository

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

const containerStartTimeout = 60 * time.Second

// startContainer runs image with containerPort published on a free local
// port and returns that port. The test is skipped when Docker is not usable.
func startContainer(t *testing.T, image, containerPort string, env ...string) string {
	t.Helper()

	if testing.Short() || os.Getenv("SKIP_CONTAINER_TESTS") != "" {
		t.Skip("container tests disabled")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not found")
	}
	if err := exec.Command("docker", "info").Run(); err != nil {
		t.Skip("docker daemon not reachable")
	}

	port, err := freePort()
	if err != nil {
		t.Fatalf("find free port: %v", err)
	}

	args := []string{"run", "-d", "--rm", "-p", fmt.Sprintf("%d:%s", port, containerPort)}
	for _, e := range env {
		args = append(args, "-e", e)
	}
	args = append(args, image)

	output, err := exec.Command("docker", args...).CombinedOutput()
	if err != nil {
		t.Fatalf("docker run %s: %v\noutput: %s", image, err, output)
	}
	containerID := strings.TrimSpace(string(output))
	t.Cleanup(func() {
		_ = exec.Command("docker", "rm", "-f", containerID).Run()
	})

	return fmt.Sprintf("%d", port)
}

// waitFor calls ready until it succeeds or the start timeout passes.
func waitFor(t *testing.T, what string, ready func(ctx context.Context) error) {
	t.Helper()

	deadline := time.Now().Add(containerStartTimeout)
	var lastErr error
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		lastErr = ready(ctx)
		cancel()
		if lastErr == nil {
			return
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("%s not ready after %v: %v", what, containerStartTimeout, lastErr)
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
