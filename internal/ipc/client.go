package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// DialTimeout bounds connecting to the running instance.
const DialTimeout = 2 * time.Second

// Client provides RPC access to the running instance.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, DialTimeout)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// OpenProject forwards a project path to the running instance.
func (c *Client) OpenProject(path string) (*OpenProjectResponse, error) {
	var resp OpenProjectResponse
	if err := c.client.Call(ServiceName+".OpenProject", OpenProjectRequest{Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NewWindow asks the running instance for an empty window.
func (c *Client) NewWindow() (*NewWindowResponse, error) {
	var resp NewWindowResponse
	if err := c.client.Call(ServiceName+".NewWindow", NewWindowRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the running instance's status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call(ServiceName+".Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
