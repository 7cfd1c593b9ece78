package paging

import "fmt"

// Connection represents a Relay-compliant GraphQL connection.
// It provides both edges (with cursors) and nodes (direct access) to support
// different query patterns.
//
// Type parameter T is the domain model type.
//
// Example GraphQL schema:
//
//	type MemberTeamConnection {
//	  edges: [MemberTeamEdge!]!
//	  nodes: [MemberTeam!]!
//	  totalCount: Int!
//	  pageInfo: PageInfo!
//	}
type Connection[T any] struct {
	// Edges contains the list of edges, each with a cursor and node.
	Edges []Edge[T] `json:"edges"`

	// Nodes provides direct access to the items without cursor overhead.
	Nodes []T `json:"nodes"`

	// TotalCount is the resolved total of the page the connection was built from.
	TotalCount int64 `json:"totalCount"`

	// PageInfo contains pagination metadata (hasNextPage, cursors, etc.)
	PageInfo *PageInfo `json:"-"`
}

// Edge represents a Relay-compliant edge in a connection.
type Edge[T any] struct {
	// Cursor is an opaque offset cursor. Passing it as After resumes
	// pagination right after this item.
	Cursor string `json:"cursor"`

	// Node is the actual data item.
	Node T `json:"node"`
}

// BuildConnection creates a Connection from a page. Every edge gets an offset
// cursor pointing just past its node, and each node is converted with
// transform (which may fail).
//
// Example usage:
//
//	conn, err := paging.BuildConnection(page, func(row member.MemberTeam) (*gql.Member, error) {
//	    return toGraphQL(row), nil
//	})
func BuildConnection[From any, To any](
	page *Page[From],
	transform func(From) (To, error),
) (*Connection[To], error) {
	if page == nil {
		return &Connection[To]{
			Nodes:    []To{},
			Edges:    []Edge[To]{},
			PageInfo: NewEmptyPageInfo(),
		}, nil
	}

	pageInfo := page.PageInfo
	if pageInfo == nil {
		pageInfo = NewOffsetPageInfo(page.Window, page.Total)
	}

	conn := &Connection[To]{
		Nodes:      make([]To, 0, len(page.Nodes)),
		Edges:      make([]Edge[To], 0, len(page.Nodes)),
		TotalCount: page.Total,
		PageInfo:   pageInfo,
	}

	for i, item := range page.Nodes {
		transformed, err := transform(item)
		if err != nil {
			return nil, fmt.Errorf("transform item at index %d: %w", i, err)
		}

		cursor := EncodeOffsetCursor(page.Window.Offset + i + 1)
		conn.Nodes = append(conn.Nodes, transformed)
		conn.Edges = append(conn.Edges, Edge[To]{
			Cursor: *cursor,
			Node:   transformed,
		})
	}

	return conn, nil
}
