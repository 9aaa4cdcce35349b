// Package sftpclient moves dataset files to and from the SFTP drop some
// departments use instead of a shared sheet link.
package sftpclient

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

type Config struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	RemoteDir             string
	InsecureIgnoreHostKey bool
}

// connect dials SSH with a context-aware timeout and opens an SFTP session.
// The caller must Close both returned clients.
func connect(ctx context.Context, cfg Config) (*ssh.Client, *sftp.Client, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return nil, nil, fmt.Errorf("sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}

	if !cfg.InsecureIgnoreHostKey {
		// TODO: swap in a known_hosts callback once the drop host publishes
		// a stable key.
		return nil, nil, fmt.Errorf("sftp: strict host key checking not implemented, set SFTP_INSECURE_IGNORE_HOSTKEY=true")
	}
	cb := ssh.InsecureIgnoreHostKey()

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         20 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, nil, fmt.Errorf("sftp: dial error: %w", r.err)
		}
		sshClient = r.client
	}

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, nil, fmt.Errorf("sftp: new client: %w", err)
	}
	return sshClient, sftpCli, nil
}

// UploadFile copies a local file into the remote drop directory.
func UploadFile(ctx context.Context, cfg Config, localPath string, remoteFileName string) error {
	sshClient, sftpCli, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer sshClient.Close()
	defer sftpCli.Close()

	remoteDir := cfg.RemoteDir
	if remoteDir == "" {
		remoteDir = "/"
	}
	if err := sftpCli.MkdirAll(remoteDir); err != nil {
		return fmt.Errorf("sftp: mkdir %s: %w", remoteDir, err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()

	remotePath := path.Join(remoteDir, remoteFileName)
	dst, err := sftpCli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: create remote file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("sftp: upload copy: %w", err)
	}
	return nil
}

// DownloadFile copies a file from the remote drop directory to localPath.
func DownloadFile(ctx context.Context, cfg Config, remoteFileName string, localPath string) error {
	sshClient, sftpCli, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer sshClient.Close()
	defer sftpCli.Close()

	remoteDir := cfg.RemoteDir
	if remoteDir == "" {
		remoteDir = "/"
	}
	remotePath := path.Join(remoteDir, remoteFileName)
	src, err := sftpCli.Open(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: open remote file %s: %w", remotePath, err)
	}
	defer src.Close()

	dst, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("sftp: create local file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("sftp: download copy: %w", err)
	}
	return dst.Close()
}
