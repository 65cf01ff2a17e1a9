// Package mcpsrv provides an extensible MCP server for shapegen.
//
// The server exposes shape inference, code generation, name casing and
// sample validation as MCP tools, plus workflow prompts and a resource for
// cached shapes. Custom tools, prompts and resources are added with
// functional options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Tools that need the shape cache or inference get Deps:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "my_tool", Description: "My tool"},
//	        func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	                res, err := d.Infer(ctx, mcpsrv.InferRequest{Samples: in.Samples})
//	                if err != nil {
//	                    return nil, MyOutput{}, err
//	                }
//	                return nil, MyOutput{Fields: res.Shape.Len()}, nil
//	            }
//	        }),
//	)
//
// # Configuration
//
// Environment variables (MAX_SAMPLES, SHAPE_CACHE_MAX_ITEMS, LOG_LEVEL and
// others) are read first; options override them:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/shapegen-mcp.log"),
//	    mcpsrv.WithDefaultOutputMode("typescript"),
//	)
package mcpsrv
