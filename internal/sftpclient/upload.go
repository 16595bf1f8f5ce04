// Package sftpclient publishes the generated artifacts to a remote drop
// directory. Publication is optional and sits outside the core pipeline:
// by the time this runs, both output files are already complete on disk.
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

func (c Config) validate() error {
	if c.Host == "" || c.User == "" || c.Pass == "" {
		return fmt.Errorf("sftpclient: missing SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	return nil
}

// UploadFiles uploads each local file under cfg.RemoteDir, keeping its base
// name. One connection is reused for all files.
func UploadFiles(ctx context.Context, cfg Config, localPaths []string) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}

	// TODO: verify against known_hosts once the drop host publishes a
	// stable key; password+ignore matches how the share is provisioned now.
	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         20 * time.Second,
	}

	sshClient, err := dial(ctx, fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), sshCfg)
	if err != nil {
		return err
	}
	defer sshClient.Close()

	cli, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("sftpclient: new client: %w", err)
	}
	defer cli.Close()

	if err := cli.MkdirAll(cfg.RemoteDir); err != nil {
		return fmt.Errorf("sftpclient: mkdir %s: %w", cfg.RemoteDir, err)
	}

	for _, local := range localPaths {
		if err := uploadOne(cli, cfg.RemoteDir, local); err != nil {
			return err
		}
	}
	return nil
}

// ssh.Dial has no context form; race it against ctx so a hung handshake
// cannot stall the run past its deadline.
func dial(ctx context.Context, addr string, cfg *ssh.ClientConfig) (*ssh.Client, error) {
	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, cfg)
		ch <- dialRes{client: c, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("sftpclient: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("sftpclient: dial: %w", r.err)
		}
		return r.client, nil
	}
}

func uploadOne(cli *sftp.Client, remoteDir, local string) error {
	src, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("sftpclient: open local file: %w", err)
	}
	defer src.Close()

	remotePath := path.Join(remoteDir, path.Base(local))
	dst, err := cli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftpclient: create %s: %w", remotePath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("sftpclient: upload %s: %w", remotePath, err)
	}
	return nil
}
