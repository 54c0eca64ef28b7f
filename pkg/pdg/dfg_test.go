package pdg

import "testing"

// var x = 1; var y = x;
const varUseAST = `{
  "type": "Program",
  "body": [
    {
      "type": "VariableDeclaration",
      "kind": "var",
      "declarations": [
        {
          "type": "VariableDeclarator",
          "id": {"type": "Identifier", "name": "x"},
          "init": {"type": "Literal", "value": 1}
        }
      ]
    },
    {
      "type": "VariableDeclaration",
      "kind": "var",
      "declarations": [
        {
          "type": "VariableDeclarator",
          "id": {"type": "Identifier", "name": "y"},
          "init": {"type": "Identifier", "name": "x"}
        }
      ]
    }
  ]
}`

func TestBuildDFGDataDependencyFromDeclarationToUse(t *testing.T) {
	g, err := IngestJSON([]byte(varUseAST))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	root := g.Root()
	BuildCFG(g, root.ID)
	BuildDFG(g, root.ID)

	firstDecl := g.Node(root.Children[0])
	secondDecl := g.Node(root.Children[1])

	found := false
	for _, d := range firstDecl.DataDepChildren {
		if d.Extremity == secondDecl.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a data dependency from x's declaration to the statement reading x; got edges: %+v", firstDecl.DataDepChildren)
	}
}

func TestBuildDFGGlobalScope(t *testing.T) {
	g, err := IngestJSON([]byte(varUseAST))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	root := g.Root()
	BuildCFG(g, root.ID)
	env := BuildDFG(g, root.ID)

	if len(env.Global.Vars) == 0 {
		t.Fatal("expected x to be declared in the top-level (global) scope")
	}
}

// function f() { var y = 1; return y; }
const functionScopeAST = `{
  "type": "Program",
  "body": [
    {
      "type": "FunctionDeclaration",
      "id": {"type": "Identifier", "name": "f"},
      "params": [],
      "body": {
        "type": "BlockStatement",
        "body": [
          {
            "type": "VariableDeclaration",
            "kind": "var",
            "declarations": [
              {
                "type": "VariableDeclarator",
                "id": {"type": "Identifier", "name": "y"},
                "init": {"type": "Literal", "value": 1}
              }
            ]
          },
          {
            "type": "ReturnStatement",
            "argument": {"type": "Identifier", "name": "y"}
          }
        ]
      }
    }
  ]
}`

func TestBuildDFGFunctionLocalsDoNotLeak(t *testing.T) {
	g, err := IngestJSON([]byte(functionScopeAST))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	root := g.Root()
	BuildCFG(g, root.ID)
	env := BuildDFG(g, root.ID)

	for _, v := range env.Global.Vars {
		if name, _ := g.Node(v).Value(); name == "y" {
			t.Fatalf("function-local variable y leaked into the enclosing scope")
		}
	}
}

// let x = 0; { let x = 1; } x;
const letShadowAST = `{
  "type": "Program",
  "body": [
    {
      "type": "VariableDeclaration",
      "kind": "let",
      "declarations": [
        {
          "type": "VariableDeclarator",
          "id": {"type": "Identifier", "name": "x"},
          "init": {"type": "Literal", "value": 0}
        }
      ]
    },
    {
      "type": "BlockStatement",
      "body": [
        {
          "type": "VariableDeclaration",
          "kind": "let",
          "declarations": [
            {
              "type": "VariableDeclarator",
              "id": {"type": "Identifier", "name": "x"},
              "init": {"type": "Literal", "value": 1}
            }
          ]
        }
      ]
    },
    {
      "type": "ExpressionStatement",
      "expression": {"type": "Identifier", "name": "x"}
    }
  ]
}`

// E4: the final use of x must resolve to the outer let, not the
// block-scoped inner one.
func TestBuildDFGLetBlockShadowResolvesToOuterDeclaration(t *testing.T) {
	g, err := IngestJSON([]byte(letShadowAST))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	root := g.Root()
	BuildCFG(g, root.ID)
	BuildDFG(g, root.ID)

	outerDecl := g.Node(root.Children[0])
	finalUse := g.Node(root.Children[2])

	found := false
	for _, d := range outerDecl.DataDepChildren {
		if d.Extremity == finalUse.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a data dependency from the outer let to the final use; got edges: %+v", outerDecl.DataDepChildren)
	}

	innerBlock := g.Node(root.Children[1])
	innerDecl := g.Node(innerBlock.Children[0])
	for _, d := range innerDecl.DataDepChildren {
		if d.Extremity == finalUse.ID {
			t.Fatalf("the final use of x must not resolve to the block-scoped inner let")
		}
	}
}

// { let y = 1; } y;
const letNoOuterAST = `{
  "type": "Program",
  "body": [
    {
      "type": "BlockStatement",
      "body": [
        {
          "type": "VariableDeclaration",
          "kind": "let",
          "declarations": [
            {
              "type": "VariableDeclarator",
              "id": {"type": "Identifier", "name": "y"},
              "init": {"type": "Literal", "value": 1}
            }
          ]
        }
      ]
    },
    {
      "type": "ExpressionStatement",
      "expression": {"type": "Identifier", "name": "y"}
    }
  ]
}`

// Testable property 7: after a let declaration's enclosing block exits, the
// bound name is absent from var_loc (here, the global scope) at the
// following statement.
func TestBuildDFGLetBindingAbsentAfterEnclosingBlockExits(t *testing.T) {
	g, err := IngestJSON([]byte(letNoOuterAST))
	if err != nil {
		t.Fatalf("IngestJSON: %v", err)
	}
	root := g.Root()
	BuildCFG(g, root.ID)
	env := BuildDFG(g, root.ID)

	for _, v := range env.Global.Vars {
		if name, _ := g.Node(v).Value(); name == "y" {
			t.Fatalf("let-bound y should not remain in scope after its block exits")
		}
	}
}
